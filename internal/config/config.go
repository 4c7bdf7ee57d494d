package config

import (
	"os"

	"rinkmetrics/internal/errors"
	"rinkmetrics/internal/loader"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	API    APIConfig
	Data   DataConfig
}

// ServerConfig holds dashboard web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds settings for the standalone JSON API server
type APIConfig struct {
	Port string
}

// DataConfig holds registration source settings
type DataConfig struct {
	// File is the path to the registration CSV/XLSX source.
	File string
	// Shape selects the source layout: auto, long or wide.
	Shape loader.Shape
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	shape, err := loader.ParseShape(getEnvOrDefault("DATA_SHAPE", "auto"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		API: APIConfig{
			Port: getEnvOrDefault("API_PORT", "8081"),
		},
		Data: DataConfig{
			File:  getEnvOrDefault("DATA_FILE", "data/registration_by_state.csv"),
			Shape: shape,
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE cannot be empty")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
