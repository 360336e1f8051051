// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds everything the HTTP server needs from the environment.
type ServerConfig struct {
	DatabaseURL    string // PostgreSQL connection URL (required)
	Port           int    // HTTP listen port
	UploadDir      string // directory for uploaded and generated images
	FrontendOrigin string // origin allowed for CORS, e.g. http://localhost:5173; empty disables cross-origin grants
	ChromePath     string // optional explicit Chrome/Chromium binary for exports
}

// NewServerConfig creates server configuration from environment variables.
// It reads DATABASE_URL (required), PORT (default: 8080), UPLOAD_DIR
// (default: ./uploads), FRONTEND_ORIGIN (unset means no CORS headers) and
// optional CHROME_PATH.
func NewServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // default
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads" // default
	}

	config := &ServerConfig{
		DatabaseURL:    databaseURL,
		Port:           port,
		UploadDir:      uploadDir,
		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
		ChromePath:     os.Getenv("CHROME_PATH"), // empty means auto-discover
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
