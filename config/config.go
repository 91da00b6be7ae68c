package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Processing ProcessingConfig
	Output     OutputConfig
	Server     ServerConfig
	USDA       USDAConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

// ProcessingConfig controls how data sets are converted
type ProcessingConfig struct {
	InvalidFoodPolicy string `mapstructure:"invalid_food_policy"` // "abort" or "skip"
	Workers           int    `mapstructure:"workers"`
}

// OutputConfig selects the output sink
type OutputConfig struct {
	Format string `mapstructure:"format"` // "csv" or "sqlite"
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	USDA  int `mapstructure:"usda"`   // requests per hour
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files.
// When configFile is empty the default search paths are used.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fdc2csv/")
	}

	// FDC2CSV_SERVER_PORT -> server.port
	v.SetEnvPrefix("FDC2CSV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional unless named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("processing.invalid_food_policy", "abort")
	v.SetDefault("processing.workers", 1)

	v.SetDefault("output.format", "csv")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")

	v.SetDefault("cache.ttl", "720h") // 30 days

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.usda", 1000)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Processing.InvalidFoodPolicy {
	case "abort", "skip":
	default:
		return fmt.Errorf("invalid food policy must be 'abort' or 'skip', got: %s", config.Processing.InvalidFoodPolicy)
	}

	if config.Processing.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", config.Processing.Workers)
	}

	if config.Output.Format != "csv" && config.Output.Format != "sqlite" {
		return fmt.Errorf("output format must be 'csv' or 'sqlite', got: %s", config.Output.Format)
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.USDA <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}
