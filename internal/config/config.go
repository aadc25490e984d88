// Package config provides application configuration loading from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPITimeout bounds every request of the admin client unless API_TIMEOUT is set.
const DefaultAPITimeout = 10 * time.Second

// Config holds the API server configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LogLevel string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ClientConfig holds the admin client configuration.
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	LogLevel string
}

// Load reads the server configuration from environment variables.
// Returns error if required variables are not set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	required := []struct {
		key string
		dst *string
	}{
		{"SERVER_HOST", &cfg.Server.Host},
		{"SERVER_PORT", &cfg.Server.Port},
		{"DB_HOST", &cfg.Database.Host},
		{"DB_PORT", &cfg.Database.Port},
		{"DB_USER", &cfg.Database.User},
		{"DB_PASSWORD", &cfg.Database.Password},
		{"DB_NAME", &cfg.Database.DBName},
		{"DB_SSLMODE", &cfg.Database.SSLMode},
	}
	for _, r := range required {
		value, err := getRequiredEnv(r.key)
		if err != nil {
			return nil, err
		}
		*r.dst = value
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	return cfg, nil
}

// LoadClient reads the admin client configuration from environment variables.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	baseURL, err := getRequiredEnv("API_BASE_URL")
	if err != nil {
		return nil, err
	}

	timeout := DefaultAPITimeout
	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT %q: %w", raw, err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("invalid API_TIMEOUT %q: must be positive", raw)
		}
	}

	return &ClientConfig{
		BaseURL:  baseURL,
		Timeout:  timeout,
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}, nil
}

// DSN returns PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getRequiredEnv reads required environment variable or returns error.
func getRequiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
