package config

import (
	"fmt"
	"time"

	"github.com/rezkam/todo-api/internal/env"
)

// EnvTest is the APP_ENV value under which the server must not bind its port.
const EnvTest = "test"

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Env             string `env:"APP_ENV" default:"development"`
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST"`
	Port              string        `env:"PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	MaxBodyBytes      int64         `env:"HTTP_MAX_BODY_BYTES" default:"1048576"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// IsTest reports whether the process runs under the test execution mode.
func (c *ServerConfig) IsTest() bool {
	return c.Env == EnvTest
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
