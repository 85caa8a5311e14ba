// Package config handles the configuration directory and endpoint settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "organizo"

	// SessionFile is the stored session filename.
	SessionFile = "session.json"

	// DefaultAPIURL is the backend base URL used when nothing is configured.
	// The deployment sets ORGANIZO_API_URL; there is exactly one base URL.
	DefaultAPIURL = "http://localhost:3001"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the REST API base URL.
	APIURL string

	// PushURL is the push-event service base URL.
	// Defaults to APIURL; the backend serves both.
	PushURL string

	// Debug enables debug logging to stderr.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory.
// Endpoint URLs come from the environment and may be overridden by flags
// after construction. If configDir is empty, uses XDG_CONFIG_HOME/organizo
// or $HOME/.config/organizo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	api := getEnv("ORGANIZO_API_URL", DefaultAPIURL)
	push := getEnv("ORGANIZO_PUSH_URL", api)
	return &Config{Dir: dir, APIURL: api, PushURL: push}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
