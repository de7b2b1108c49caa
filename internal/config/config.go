// Package config builds the database configuration once at startup.
// Nothing outside this package reads the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the connection parameters for the target database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Load reads a .env file if one exists, then the process environment.
// DB_USER, DB_PASSWORD and DB_NAME are mandatory; DB_HOST and DB_PORT
// default to localhost:3306.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := &Config{
		Host:     getenvDefault("DB_HOST", "localhost"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
	}

	if cfg.User == "" {
		return nil, fmt.Errorf("DB_USER environment variable is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("DB_NAME environment variable is required")
	}

	portText := getenvDefault("DB_PORT", "3306")
	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT %q: %w", portText, err)
	}
	cfg.Port = port

	return cfg, nil
}

// DSN renders the go-sql-driver connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Database)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
