package config

import (
	"errors"
	"os"
	"time"
)

// app config: AI provider, auth and janitor settings
type Config struct {
	Provider        string
	JWTSecret       string
	JanitorSchedule string
	JanitorMaxIdle  time.Duration
	JanitorEnabled  bool
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	maxIdle, err := time.ParseDuration(getEnvOrDefault("SESSION_MAX_IDLE", "24h"))
	if err != nil {
		return nil, errors.New("invalid SESSION_MAX_IDLE: " + err.Error())
	}

	config := &Config{
		Provider:        getEnvOrDefault("AI_PROVIDER", "gemini"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JanitorSchedule: getEnvOrDefault("JANITOR_SCHEDULE", "0 * * * *"),
		JanitorMaxIdle:  maxIdle,
		JanitorEnabled:  getEnvOrDefault("JANITOR_ENABLED", "true") == "true",
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
