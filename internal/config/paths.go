package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/releasekit/config.yml
// - macOS: ~/Library/Application Support/releasekit/config.yml
// - Windows: %APPDATA%\releasekit\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "releasekit", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .releasekit/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".releasekit", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".releasekit"
}
