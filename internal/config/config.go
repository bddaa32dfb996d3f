package config

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at configPath, applies CERTINV_* environment overrides and
// validates the result. An empty path yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvLogLevel          = "CERTINV_LOG_LEVEL"
	EnvTransportHost     = "CERTINV_TRANSPORT_HOST"
	EnvTransportPath     = "CERTINV_TRANSPORT_PATH"
	EnvTransportToken    = "CERTINV_TRANSPORT_TOKEN"
	EnvReceiverToken     = "CERTINV_RECEIVER_TOKEN"
	EnvRedisPassword     = "CERTINV_REDIS_PASSWORD"
	EnvRedisUsername     = "CERTINV_REDIS_USERNAME"
	EnvPKCS12Password    = "CERTINV_PKCS12_PASSWORD"
	EnvInventoryProvider = "CERTINV_INVENTORY_PROVIDER"
)

func applyEnvironmentOverrides(config *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Log.Level = level
	}

	if host := os.Getenv(EnvTransportHost); host != "" {
		config.Transport.Host = host
	}

	if path := os.Getenv(EnvTransportPath); path != "" {
		config.Transport.Path = path
	}

	if token := os.Getenv(EnvTransportToken); token != "" {
		config.Transport.Token = token
	}

	if token := os.Getenv(EnvReceiverToken); token != "" {
		config.Receiver.Token = token
	}

	if password := os.Getenv(EnvRedisPassword); password != "" {
		if config.Receiver.Redis == nil {
			config.Receiver.Redis = &RedisConfig{}
		}
		config.Receiver.Redis.Password = password
	}

	if username := os.Getenv(EnvRedisUsername); username != "" {
		if config.Receiver.Redis == nil {
			config.Receiver.Redis = &RedisConfig{}
		}
		config.Receiver.Redis.Username = username
	}

	if password := os.Getenv(EnvPKCS12Password); password != "" {
		if config.Inventory.Directory == nil {
			config.Inventory.Directory = &DirectoryStoresConfig{}
		}
		config.Inventory.Directory.PKCS12Password = password
	}

	if provider := os.Getenv(EnvInventoryProvider); provider != "" {
		config.Inventory.Provider = provider
	}
}

func validateConfig(config *Config) error {
	err := config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.validateInventoryConfig()
	if err != nil {
		return err
	}

	err = config.validateFilterConfig()
	if err != nil {
		return err
	}

	err = config.validateTransportConfig()
	if err != nil {
		return err
	}

	err = config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateCORSConfig()
	if err != nil {
		return err
	}

	err = config.validateReceiverConfig()
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	} else {
		switch c.Log.Format {
		case "text", "json":
		default:
			return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	} else {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
		}
	}

	return nil
}

func (c *Config) validateInventoryConfig() error {
	inv := &c.Inventory

	if inv.Provider == "" {
		inv.Provider = defaultProvider()
	} else {
		switch inv.Provider {
		case ProviderSystem, ProviderDirectory:
		default:
			return fmt.Errorf("invalid inventory provider: %s, options are 'system' or 'directory'", inv.Provider)
		}
	}

	if len(inv.Locations) == 0 {
		inv.Locations = append([]LocationConfig(nil), DefaultInventoryConfig.Locations...)
	}

	for i, loc := range inv.Locations {
		switch strings.ToLower(loc.Scope) {
		case "machine", "user":
			inv.Locations[i].Scope = strings.ToLower(loc.Scope)
		default:
			return fmt.Errorf("inventory.locations[%d].scope must be 'machine' or 'user', got %q", i, loc.Scope)
		}

		if strings.TrimSpace(loc.Name) == "" {
			return fmt.Errorf("inventory.locations[%d].name is required", i)
		}
	}

	if inv.Provider == ProviderDirectory {
		if inv.Directory == nil {
			inv.Directory = &DirectoryStoresConfig{}
		}
		if inv.Directory.MachineRoot == "" {
			inv.Directory.MachineRoot = DefaultDirectoryStoresConfig.MachineRoot
		}
		if inv.Directory.UserRoot == "" {
			inv.Directory.UserRoot = DefaultDirectoryStoresConfig.UserRoot
		}
		inv.Directory.MachineRoot = expandHome(inv.Directory.MachineRoot)
		inv.Directory.UserRoot = expandHome(inv.Directory.UserRoot)
	}

	if inv.WarnDays == 0 {
		inv.WarnDays = DefaultInventoryConfig.WarnDays
	} else if inv.WarnDays < 0 {
		return fmt.Errorf("inventory.warn_days must be positive, got %d", inv.WarnDays)
	}

	if inv.RefreshInterval < 0 {
		return fmt.Errorf("inventory.refresh_interval must not be negative")
	} else if inv.RefreshInterval > 0 && inv.RefreshInterval < MinRefreshInterval {
		return fmt.Errorf("inventory.refresh_interval cannot be less than %s", MinRefreshInterval)
	}

	return nil
}

func defaultProvider() string {
	if runtime.GOOS == "windows" {
		return ProviderSystem
	}
	return ProviderDirectory
}

func (c *Config) validateFilterConfig() error {
	for i, s := range c.Filter.IssuerSubstrings {
		if s == "" {
			return fmt.Errorf("filter.issuer_substrings[%d] must not be empty", i)
		}
	}

	for i, p := range c.Filter.SubjectPrefixes {
		if p == "" {
			return fmt.Errorf("filter.subject_prefixes[%d] must not be empty", i)
		}
	}

	return nil
}

// TransportEnabled reports whether a report destination is configured.
func (c *Config) TransportEnabled() bool {
	return c.Transport.Host != ""
}

func (c *Config) validateTransportConfig() error {
	if c.Transport.Path == "" {
		c.Transport.Path = DefaultTransportConfig.Path
	} else if !strings.HasPrefix(c.Transport.Path, "/") {
		return fmt.Errorf("transport.path must start with '/', got %q", c.Transport.Path)
	}

	if c.Transport.Timeout == 0 {
		c.Transport.Timeout = DefaultTransportConfig.Timeout
	} else if c.Transport.Timeout < 0 {
		return fmt.Errorf("transport.timeout must be positive")
	}

	if !c.TransportEnabled() {
		return nil
	}

	return validateHost(c.Transport.Host, "transport.host")
}

func (c *Config) validateServerConfig() error {
	if c.Server.Host == "" {
		c.Server.Host = DefaultServerConfig.Host
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	} else if err := validatePort(c.Server.Port, "server.port"); err != nil {
		return err
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}
	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateReceiverConfig() error {
	r := &c.Receiver

	if r.Port == 0 {
		r.Port = DefaultReceiverConfig.Port
	} else if err := validatePort(r.Port, "receiver.port"); err != nil {
		return err
	}

	if r.TLS != nil {
		if r.TLS.CertFile == "" || r.TLS.KeyFile == "" {
			return fmt.Errorf("receiver.tls requires both cert_file and key_file")
		}
		r.TLS.CertFile = expandHome(r.TLS.CertFile)
		r.TLS.KeyFile = expandHome(r.TLS.KeyFile)
	}

	if r.MaxBody == 0 {
		r.MaxBody = DefaultReceiverConfig.MaxBody
	} else if r.MaxBody < 0 {
		return fmt.Errorf("receiver.max_body_bytes must be positive")
	}

	if r.Sink == "" {
		r.Sink = DefaultReceiverConfig.Sink
	}

	switch r.Sink {
	case "file":
		if r.File == nil {
			r.File = &FileSink{}
		}
		if r.File.Directory == "" {
			r.File.Directory = DefaultFileSink.Directory
		}
	case "redis":
		return c.validateRedisConfig()
	case "sqlite":
		if r.SQLite == nil {
			r.SQLite = &SQLiteConfig{}
		}
		if r.SQLite.Path == "" {
			r.SQLite.Path = DefaultSQLiteConfig.Path
		}
	default:
		return fmt.Errorf("invalid receiver sink: %s, options are 'file', 'redis' or 'sqlite'", r.Sink)
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	redis := c.Receiver.Redis
	if redis == nil {
		return fmt.Errorf("receiver.redis config is required for the redis sink")
	}

	if redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if _, _, err := net.SplitHostPort(redis.Address); err != nil {
		return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
	}

	if redis.Index < 0 {
		return fmt.Errorf("redis index must be non-negative, got %d", redis.Index)
	}

	if redis.KeyPrefix == "" {
		redis.KeyPrefix = DefaultRedisConfig.KeyPrefix
	}

	return nil
}
