package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/storedir"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Upstream  UpstreamConfig
	RateLimit RateLimitConfig
	Stores    map[string]storedir.Override
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// UpstreamConfig holds settings shared by every outbound store request
type UpstreamConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxResults       int           `mapstructure:"max_results"`
	CloudflareBypass bool          `mapstructure:"cloudflare_bypass"`
	UserAgents       []string      `mapstructure:"user_agents"`
}

// RateLimitConfig holds inbound rate limiting configuration.
// PerIP is requests per second; 0 disables the limiter.
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"`
	Burst int     `mapstructure:"burst"`
}

var environments = []string{"development", "test", "production"}

const maxResultsCeiling = 100

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/closetscout/")

	// Environment variable settings
	v.SetEnvPrefix("CLOSETSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile reads ./.env when present. Variables already set in the
// environment win over the file.
func loadEnvFile() error {
	err := gotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("log.level", "info")

	// Upstream defaults
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.max_results", 20)
	v.SetDefault("upstream.cloudflare_bypass", false)
	v.SetDefault("upstream.user_agents", []string{})

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 0)
	v.SetDefault("ratelimit.burst", 10)
}

// validate validates the configuration
func validate(config *Config) error {
	if !slices.Contains(environments, config.Server.Environment) {
		return fmt.Errorf("environment must be one of %s, got: %q", strings.Join(environments, ", "), config.Server.Environment)
	}

	if config.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got: %s", config.Upstream.Timeout)
	}

	if config.Upstream.MaxResults < 1 || config.Upstream.MaxResults > maxResultsCeiling {
		return fmt.Errorf("upstream max_results must be between 1 and %d, got: %d", maxResultsCeiling, config.Upstream.MaxResults)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip cannot be negative, got: %v", config.RateLimit.PerIP)
	}
	if config.RateLimit.PerIP > 0 && config.RateLimit.Burst < 1 {
		return fmt.Errorf("ratelimit burst must be at least 1 when per_ip is set, got: %d", config.RateLimit.Burst)
	}

	for id, override := range config.Stores {
		if !isBuiltinStore(id) {
			return fmt.Errorf("%w in stores section: %q", domain.ErrUnknownStore, id)
		}
		if override.MaxResults < 0 || override.MaxResults > maxResultsCeiling {
			return fmt.Errorf("stores.%s.max_results must be between 0 and %d, got: %d", id, maxResultsCeiling, override.MaxResults)
		}
	}

	return nil
}

func isBuiltinStore(id string) bool {
	return slices.ContainsFunc(storedir.Builtin(), func(s domain.Store) bool {
		return string(s.ID) == id
	})
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
