package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/Kerhoff/cali/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL         string `validate:"required"`
	LogLevel            string `validate:"oneof=trace debug info warn warning error fatal panic"`
	MetricsFile         string
	DefaultCalendarName string `validate:"required"`
}

// Load loads configuration from an optional .env file and environment
// variables. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         getEnvOrDefault("CALI_DATABASE_URL", "calendar.db"),
		LogLevel:            getEnvOrDefault("CALI_LOG_LEVEL", "warn"),
		MetricsFile:         os.Getenv("CALI_METRICS_FILE"),
		DefaultCalendarName: getEnvOrDefault("CALI_DEFAULT_CALENDAR", models.DefaultCalendarName),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: %s failed %q check", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
