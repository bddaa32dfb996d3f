package version

var (
	Version   string = "dev"
	GitCommit string = "unknown"
	BuildTime string = "unknown"
)

const ProductName = "cert-inventory"

func GetVersion() string {
	return Version
}

func GetFullVersion() string {
	return Version + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
}

// UserAgent is sent with every outgoing report.
func UserAgent() string {
	return ProductName + "/" + Version
}
