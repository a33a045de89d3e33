package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Token    TokenConfig
}

// ServerConfig holds process-level settings
type ServerConfig struct {
	Env string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds access-token signing settings
type JWTConfig struct {
	AccessSecret   string
	Issuer         string
	ExpirationMins int
}

// TokenConfig holds refresh-token lifecycle settings
type TokenConfig struct {
	RefreshTTL       time.Duration
	SweepInterval    time.Duration
	RevokedRetention time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Env: getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "hireline"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			AccessSecret:   getEnv("JWT_ACCESS_SECRET", "hireline-dev-secret-change-me"),
			Issuer:         getEnv("JWT_ISSUER", "hireline"),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 30),
		},
		Token: TokenConfig{
			RefreshTTL:       getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			SweepInterval:    getDurationEnv("TOKEN_SWEEP_INTERVAL", time.Hour),
			RevokedRetention: getDurationEnv("REVOKED_TOKEN_RETENTION", 7*24*time.Hour),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// JWT validation - critical for production
	if c.JWT.AccessSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET is required"))
	}
	if c.IsProduction() {
		if len(c.JWT.AccessSecret) < 32 {
			errs = append(errs, errors.New("JWT_ACCESS_SECRET must be at least 32 characters in production"))
		}
		if strings.Contains(c.JWT.AccessSecret, "dev-secret") {
			errs = append(errs, errors.New("JWT_ACCESS_SECRET must not use the development default in production"))
		}
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	// Token lifecycle validation
	if c.Token.RefreshTTL <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL must be positive"))
	}
	if c.Token.SweepInterval <= 0 {
		errs = append(errs, errors.New("TOKEN_SWEEP_INTERVAL must be positive"))
	}
	if c.Token.RevokedRetention < 0 {
		errs = append(errs, errors.New("REVOKED_TOKEN_RETENTION must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
