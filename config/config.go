// Package config loads client configuration from a YAML file, a .env
// file, and environment variables, in that order of increasing
// precedence. Environment variables use the KPD_ prefix
// (KPD_SERVICE_KEY, KPD_BASE_URL, ...).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sinbum/korea-public-data-be-sub000/logger"
	"github.com/sinbum/korea-public-data-be-sub000/retry"
)

// envPrefix namespaces this library's environment variables.
const envPrefix = "KPD"

// Config is the full client configuration.
type Config struct {
	// BaseURL is the upstream service root.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// ServiceKey is the portal-issued credential sent as a query parameter.
	ServiceKey string `mapstructure:"service_key"`
	// Timeout bounds a single attempt.
	Timeout time.Duration `mapstructure:"timeout"`
	// Retry configures the backoff policy.
	Retry Retry `mapstructure:"retry"`
	// Log configures structured logging.
	Log logger.Config `mapstructure:"log"`
}

// Retry holds the retry policy knobs.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"omitempty,min=1"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
	Multiplier  float64       `mapstructure:"multiplier"`
	Jitter      bool          `mapstructure:"jitter"`
}

// PolicyConfig converts the loaded knobs into a retry.Config, leaving
// unset values to the retry package's defaults.
func (r Retry) PolicyConfig() retry.Config {
	return retry.Config{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay,
		MaxDelay:    r.MaxDelay,
		Multiplier:  r.Multiplier,
		Jitter:      r.Jitter,
	}
}

// Load reads configuration from the given YAML file (optional — pass ""
// to rely on env alone), a .env file in the working directory if present,
// and KPD_-prefixed environment variables.
func Load(path string) (*Config, error) {
	// .env is a convenience for local development; absence is not an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the environment only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	// Registering the keys keeps env-only values visible to Unmarshal.
	v.SetDefault("base_url", "")
	v.SetDefault("service_key", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", 500*time.Millisecond)
	v.SetDefault("retry.max_delay", 30*time.Second)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.jitter", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}
