package config

import (
	"os"
	"strconv"

	"skudiff/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Compare  CompareConfig
	Uploads  UploadConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// CompareConfig holds defaults for the comparison routine
type CompareConfig struct {
	CaseSensitive bool
	Direction     string
}

// UploadConfig holds settings for transient uploaded files and reports
type UploadConfig struct {
	Dir           string
	MaxFileSizeMB int64
}

// DatabaseConfig holds optional database source settings.
// The database is an alternative input source only; nothing is persisted.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Compare: CompareConfig{
			CaseSensitive: getEnvBoolOrDefault("CASE_SENSITIVE", true),
			Direction:     getEnvOrDefault("DIRECTION", "first-minus-second"),
		},
		Uploads: UploadConfig{
			Dir:           getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
			MaxFileSizeMB: getEnvInt64OrDefault("MAX_FILE_SIZE_MB", 50),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Uploads.MaxFileSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_FILE_SIZE_MB must be positive")
	}
	switch config.Compare.Direction {
	case "first-minus-second", "second-minus-first":
	default:
		return errors.ConfigInvalid("DIRECTION must be first-minus-second or second-minus-first")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
