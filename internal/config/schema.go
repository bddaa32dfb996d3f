package config

import (
	"time"
)

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Inventory InventoryConfig `yaml:"inventory"`
	Filter    FilterConfig    `yaml:"filter"`
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Receiver  ReceiverConfig  `yaml:"receiver"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type InventoryConfig struct {
	// Provider is "system" (the operating system certificate stores) or "directory".
	Provider        string                 `yaml:"provider"`
	Locations       []LocationConfig       `yaml:"locations"`
	Directory       *DirectoryStoresConfig `yaml:"directory"`
	WarnDays        int                    `yaml:"warn_days"`
	RefreshInterval time.Duration          `yaml:"refresh_interval"`
}

type LocationConfig struct {
	Scope string `yaml:"scope"`
	Name  string `yaml:"name"`
}

type DirectoryStoresConfig struct {
	MachineRoot    string `yaml:"machine_root"`
	UserRoot       string `yaml:"user_root"`
	PKCS12Password string `yaml:"pkcs12_password"`
}

const (
	ProviderSystem    = "system"
	ProviderDirectory = "directory"
)

var DefaultInventoryConfig = InventoryConfig{
	Locations: []LocationConfig{
		{Scope: "machine", Name: "MY"},
		{Scope: "user", Name: "MY"},
	},
	WarnDays: 120,
}

var DefaultDirectoryStoresConfig = DirectoryStoresConfig{
	MachineRoot: "/etc/cert-inventory/machine",
	UserRoot:    "~/.cert-inventory",
}

// MinRefreshInterval bounds how often the stores are re-read in serve mode.
const MinRefreshInterval = 30 * time.Second

type FilterConfig struct {
	IssuerSubstrings []string `yaml:"issuer_substrings"`
	SubjectPrefixes  []string `yaml:"subject_prefixes"`
	RejectUUID       *bool    `yaml:"reject_uuid_subjects"`
	ReplaceDefaults  bool     `yaml:"replace_defaults"`
}

type TransportConfig struct {
	Host    string        `yaml:"host"`
	Path    string        `yaml:"path"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

var DefaultTransportConfig = TransportConfig{
	Path:    "/uploadcert",
	Timeout: 30 * time.Second,
}

type ServerConfig struct {
	Host  string             `yaml:"host"`
	Port  int                `yaml:"port"`
	Debug *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Host: "localhost",
	Port: 8080,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:8080"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

type ReceiverConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	TLS               *TLSConfig    `yaml:"tls"`
	Token             string        `yaml:"token"`
	MaxBody           int64         `yaml:"max_body_bytes"`
	TrustProxyHeaders bool          `yaml:"trust_proxy_headers"`
	Sink              string        `yaml:"sink"` // "file", "redis" or "sqlite"
	File              *FileSink     `yaml:"file"`
	Redis             *RedisConfig  `yaml:"redis"`
	SQLite            *SQLiteConfig `yaml:"sqlite"`
}

var DefaultReceiverConfig = ReceiverConfig{
	Port:    8443,
	MaxBody: 10 << 20,
	Sink:    "file",
}

// TLSConfig makes the receiver terminate HTTPS itself. Without it the receiver serves plain
// HTTP and is expected to sit behind a TLS terminating proxy.
type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type FileSink struct {
	Directory string `yaml:"directory"`
}

var DefaultFileSink = FileSink{
	Directory: "uploads",
}

type RedisConfig struct {
	Address   string `yaml:"address"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Index     int    `yaml:"index"`
	KeyPrefix string `yaml:"key_prefix"`
}

var DefaultRedisConfig = RedisConfig{
	KeyPrefix: "certinv",
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

var DefaultSQLiteConfig = SQLiteConfig{
	Path: "reports.db",
}
