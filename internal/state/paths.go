package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDirName is the directory holding the editor's own configuration
	ConfigDirName = "lunar-accounts"

	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"

	// DefaultStorePath is the launcher's accounts file, relative to the home directory
	DefaultStorePath = "~/.lunarclient/settings/game/accounts.json"
)

// GetConfigDir returns the path to the configuration directory.
// It honours XDG_CONFIG_HOME and defaults to ~/.config/lunar-accounts/.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// EnsureDir ensures that a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory %s: %w", path, err)
	}
	return nil
}
