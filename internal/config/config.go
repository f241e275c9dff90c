package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DefaultFormat string
	OutputDir     string
	Environment   string
	LogLevel      string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		DefaultFormat: getEnv("EXPORT_DEFAULT_FORMAT", "pdf"),
		OutputDir:     getEnv("EXPORT_OUTPUT_DIR", "."),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
