package config

import (
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	Version        string
	LogLevel       string
	UpstreamHost   string // Unipile DSN, e.g. api1.unipile.com:13111
	UpstreamAPIKey string // Sent as X-API-KEY on every upstream call
	BodyLimit      string // Max inbound request body (echo BodyLimit syntax, e.g. 10M)
	EnableSwagger  bool
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		Version:        getEnv("VERSION", "1.0.0"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		UpstreamHost:   getEnv("UPSTREAM_HOST", os.Getenv("UNIPILE_DSN")),
		UpstreamAPIKey: getEnv("UPSTREAM_API_KEY", os.Getenv("UNIPILE_API_KEY")),
		BodyLimit:      getEnv("BODY_LIMIT", "10M"),
		EnableSwagger:  getEnvBool("ENABLE_SWAGGER", true),
	}

	return config
}

// Validate reports missing settings the process cannot serve without
func (c *Config) Validate() error {
	var errs []error
	if c.UpstreamHost == "" {
		errs = append(errs, errors.New("UPSTREAM_HOST (or UNIPILE_DSN) is required"))
	}
	if c.UpstreamAPIKey == "" {
		errs = append(errs, errors.New("UPSTREAM_API_KEY (or UNIPILE_API_KEY) is required"))
	}
	return errors.Join(errs...)
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	return c.NewLogger(os.Stdout)
}

// NewLogger is SetupLogger writing to w. The MCP server logs to stderr since
// stdout carries the protocol.
func (c *Config) NewLogger(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", "unipile").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
