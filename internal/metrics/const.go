package metrics

const Namespace = "cert_inventory"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

const (
	SinkTypeFile   = "file"
	SinkTypeRedis  = "redis"
	SinkTypeSQLite = "sqlite"
)
