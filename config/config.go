package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Catalogue backends
const (
	CatalogueBackendMemory = "memory"
	CatalogueBackendRedis  = "redis"
)

// Config holds all configuration for the Enterprise Search plugin service
type Config struct {
	EnterpriseSearch struct {
		// Host is the Enterprise Search deployment. Empty means no remote API
		// is configured and config data is never fetched.
		Host string `mapstructure:"host"`
		// BackendURL serves the config data endpoint (default: Host)
		BackendURL     string        `mapstructure:"backend_url"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"` // 0 = no timeout
	} `mapstructure:"enterprise_search"`

	API struct {
		Port           int      `mapstructure:"port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		MaxMounts      int      `mapstructure:"max_mounts"` // Mounts kept before the oldest is torn down
		RateLimit      struct {
			RequestsPerSecond int `mapstructure:"requests_per_second"`
			Burst             int `mapstructure:"burst"`
			MaxClients        int `mapstructure:"max_clients"` // Size of the per-client limiter cache
		} `mapstructure:"rate_limit"`
	} `mapstructure:"api"`

	Catalogue struct {
		Enabled bool   `mapstructure:"enabled"`
		Backend string `mapstructure:"backend"`
		Redis   struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
			PoolSize int    `mapstructure:"pool_size"`
			Prefix   string `mapstructure:"prefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"catalogue"`

	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("enterprise_search.host", "")
	viper.SetDefault("enterprise_search.backend_url", "") // Empty = use host
	viper.SetDefault("enterprise_search.request_timeout", time.Duration(0))
	viper.SetDefault("api.port", 5601)
	viper.SetDefault("api.allowed_origins", []string{"http://localhost:5601"})
	viper.SetDefault("api.max_mounts", 1024)
	viper.SetDefault("api.rate_limit.requests_per_second", 50)
	viper.SetDefault("api.rate_limit.burst", 100)
	viper.SetDefault("api.rate_limit.max_clients", 10000)
	viper.SetDefault("catalogue.enabled", true)
	viper.SetDefault("catalogue.backend", CatalogueBackendMemory)
	viper.SetDefault("catalogue.redis.addr", "localhost:6379")
	viper.SetDefault("catalogue.redis.password", "")
	viper.SetDefault("catalogue.redis.db", 0)
	viper.SetDefault("catalogue.redis.pool_size", 10)
	viper.SetDefault("catalogue.redis.prefix", "feature_catalogue")
	viper.SetDefault("logging.level", "info")
}

// loadFromEnv binds environment variables to config keys
func loadFromEnv() {
	viper.SetEnvPrefix("ENTSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Short aliases for the settings most often overridden in containers
	_ = viper.BindEnv("enterprise_search.host", "ENTSEARCH_HOST")
	_ = viper.BindEnv("enterprise_search.backend_url", "ENTSEARCH_BACKEND_URL")
	_ = viper.BindEnv("api.port", "ENTSEARCH_PORT")
}

// LoadConfig loads configuration from ./config.yaml or ./config/config.yaml and the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration from an explicit file path.
// An empty path searches the default locations; a missing file is not an error.
func LoadConfigFile(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	loadFromEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, will use defaults and env vars
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	config.EnterpriseSearch.Host = strings.TrimRight(strings.TrimSpace(config.EnterpriseSearch.Host), "/")
	config.EnterpriseSearch.BackendURL = strings.TrimRight(strings.TrimSpace(config.EnterpriseSearch.BackendURL), "/")

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// HasHost reports whether a remote Enterprise Search API is configured
func (c *Config) HasHost() bool {
	return c.EnterpriseSearch.Host != ""
}

// GetBackendURL returns the base URL serving the config data endpoint
func (c *Config) GetBackendURL() string {
	if c.EnterpriseSearch.BackendURL == "" {
		return c.EnterpriseSearch.Host
	}
	return c.EnterpriseSearch.BackendURL
}

// GetLogLevel returns the parsed log level, defaulting to info
func (c *Config) GetLogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// validateConfig validates the configuration for correctness
func validateConfig(config *Config) error {
	for _, u := range []struct {
		key   string
		value string
	}{
		{"enterprise_search.host", config.EnterpriseSearch.Host},
		{"enterprise_search.backend_url", config.EnterpriseSearch.BackendURL},
	} {
		if u.value == "" {
			continue
		}
		parsed, err := url.Parse(u.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", u.key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid %s: scheme must be http or https, got %q", u.key, parsed.Scheme)
		}
		if parsed.Host == "" {
			return fmt.Errorf("invalid %s: missing host", u.key)
		}
	}

	if config.EnterpriseSearch.RequestTimeout < 0 {
		return fmt.Errorf("enterprise_search.request_timeout must not be negative, got %v", config.EnterpriseSearch.RequestTimeout)
	}

	// Validate API port
	if config.API.Port < 1 || config.API.Port > 65535 {
		return fmt.Errorf("invalid API port: %d (must be 1-65535)", config.API.Port)
	}
	if config.API.MaxMounts < 0 {
		return fmt.Errorf("api.max_mounts must not be negative, got %d", config.API.MaxMounts)
	}
	if config.API.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("api.rate_limit.requests_per_second must be positive, got %d", config.API.RateLimit.RequestsPerSecond)
	}
	if config.API.RateLimit.Burst <= 0 {
		return fmt.Errorf("api.rate_limit.burst must be positive, got %d", config.API.RateLimit.Burst)
	}
	if config.API.RateLimit.MaxClients <= 0 {
		return fmt.Errorf("api.rate_limit.max_clients must be positive, got %d", config.API.RateLimit.MaxClients)
	}

	if config.Catalogue.Enabled {
		switch config.Catalogue.Backend {
		case CatalogueBackendMemory:
		case CatalogueBackendRedis:
			if config.Catalogue.Redis.Addr == "" {
				return fmt.Errorf("catalogue.redis.addr cannot be empty when catalogue.backend is redis")
			}
			if config.Catalogue.Redis.Prefix == "" {
				return fmt.Errorf("catalogue.redis.prefix cannot be empty when catalogue.backend is redis")
			}
		default:
			return fmt.Errorf("invalid catalogue.backend: %q (must be %s or %s)", config.Catalogue.Backend, CatalogueBackendMemory, CatalogueBackendRedis)
		}
	}

	if _, err := zapcore.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}

	return nil
}
