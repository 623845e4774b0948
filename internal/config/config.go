// Package config loads runtime configuration from the environment. A
// .env file in the working directory is honored when present; explicit
// environment variables always win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selects where personalization state is persisted.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DataDir is the root of the content library and user data.
	DataDir string
	// UserDataBackend selects the persistence adapter implementation.
	UserDataBackend Backend
	// Port is the HTTP API listen port.
	Port int
	// Debug enables verbose logging and error details in API responses.
	Debug bool
}

// Load resolves configuration from .env (if present) and the process
// environment. Missing values fall back to defaults.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		UserDataBackend: BackendSQLite,
		Port:            8990,
	}

	cfg.DataDir = os.Getenv("HELIX_DATA_DIR")
	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".helix")
	}

	switch backend := os.Getenv("HELIX_USERDATA_BACKEND"); backend {
	case "":
		// keep default
	case string(BackendSQLite), string(BackendFile), string(BackendMemory):
		cfg.UserDataBackend = Backend(backend)
	default:
		return nil, fmt.Errorf("unknown HELIX_USERDATA_BACKEND %q", backend)
	}

	if portStr := os.Getenv("HELIX_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid HELIX_PORT %q", portStr)
		}
		cfg.Port = port
	}

	cfg.Debug = os.Getenv("HELIX_DEBUG") == "true" || os.Getenv("DEBUG") == "true"

	return cfg, nil
}
