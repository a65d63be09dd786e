package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Neo4jConfig holds the connection parameters for the hosted graph database.
type Neo4jConfig struct {
	URI      string `validate:"required"`
	User     string `validate:"required"`
	Password string
	Database string
	// QueryLimit caps the number of interaction rows pulled at startup.
	QueryLimit int `validate:"min=1"`
}

// LayoutConfig holds the spring layout parameters. They are read once at
// startup; positions never change for the lifetime of the process.
type LayoutConfig struct {
	Iterations int     `validate:"min=1"`
	Seed       uint64
	Scale      float64 `validate:"gt=0"`
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            int    `validate:"min=1,max=65535"`
	BindAddress     string `validate:"required"`
	WebSocketOrigin string `validate:"required"`
	Environment     string `validate:"oneof=development production"`

	// Logging
	LogLevel string

	// Presentation style sheet (optional, hot-reloaded)
	StylePath string

	// Tracing (optional; disabled when empty)
	OTLPEndpoint string

	// DemoMode serves a built-in sample dataset instead of querying Neo4j.
	DemoMode bool

	Neo4j  Neo4jConfig
	Layout LayoutConfig
}

// LoadConfig loads configuration from environment variables. The deployment
// platform populates PORT and RENDER_EXTERNAL_HOSTNAME; everything else has
// local-run defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvInt("PORT", 8080),
		BindAddress:     getEnv("BIND_ADDRESS", "0.0.0.0"),
		WebSocketOrigin: getEnv("WEBSOCKET_ORIGIN", getEnv("RENDER_EXTERNAL_HOSTNAME", "*")),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StylePath:       getEnv("STYLE_PATH", ""),
		OTLPEndpoint:    getEnv("OTLP_ENDPOINT", ""),
		DemoMode:        getEnv("DEMO_MODE", "") == "true",

		Neo4j: Neo4jConfig{
			URI:        getEnv("NEO4J_URI", "neo4j://localhost:7687"),
			User:       getEnv("NEO4J_USER", "neo4j"),
			Password:   getEnv("NEO4J_PASSWORD", ""),
			Database:   getEnv("NEO4J_DATABASE", ""),
			QueryLimit: getEnvInt("QUERY_LIMIT", 100),
		},
		Layout: LayoutConfig{
			Iterations: getEnvInt("LAYOUT_ITERATIONS", 100),
			Seed:       uint64(getEnvInt("LAYOUT_SEED", 42)),
			Scale:      getEnvFloat("LAYOUT_SCALE", 1.5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Environment == "production" {
		if !c.DemoMode && os.Getenv("NEO4J_URI") == "" {
			return fmt.Errorf("NEO4J_URI is required in production")
		}
		if c.WebSocketOrigin == "*" {
			return fmt.Errorf("WEBSOCKET_ORIGIN or RENDER_EXTERNAL_HOSTNAME is required in production")
		}
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
