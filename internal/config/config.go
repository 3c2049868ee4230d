// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"

	"github.com/aristath/moneyball/internal/clients/backend"
)

// MinSecretLength is the shortest accepted cookie signing key.
const MinSecretLength = 32

// Config holds application configuration
type Config struct {
	APIURL         string        // Backend base address including the /api path
	DataDir        string        // Terminal session database and log (always absolute)
	SessionSecret  []byte        // Cookie signing key for the web frontend
	RequestTimeout time.Duration // Per backend call
	LogLevel       string
	Port           int
	DevMode        bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("MONEYBALL_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".moneyball")
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		APIURL:         getEnv("MONEYBALL_API_URL", backend.DefaultBaseURL),
		DataDir:        absDataDir,
		SessionSecret:  []byte(getEnv("MONEYBALL_SESSION_SECRET", "")),
		RequestTimeout: time.Duration(getEnvAsInt("MONEYBALL_REQUEST_TIMEOUT", 30)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnvAsInt("MONEYBALL_PORT", 8080),
		DevMode:        getEnvAsBool("DEV_MODE", false),
	}

	// Dev mode gets a per-process key; sessions do not survive a restart.
	if cfg.DevMode && len(cfg.SessionSecret) == 0 {
		cfg.SessionSecret = securecookie.GenerateRandomKey(MinSecretLength)
	}

	return cfg, nil
}

// Validate checks the settings every frontend needs.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid MONEYBALL_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid MONEYBALL_API_URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid MONEYBALL_API_URL %q: missing host", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("MONEYBALL_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// ValidateServer additionally checks what the web frontend needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !c.DevMode && len(c.SessionSecret) < MinSecretLength {
		return fmt.Errorf("MONEYBALL_SESSION_SECRET must be at least %d bytes", MinSecretLength)
	}
	return nil
}

// SessionDBPath is where the terminal frontend persists its session.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// LogFilePath is where the terminal frontend writes its log.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.DataDir, "moneyball-tui.log")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
