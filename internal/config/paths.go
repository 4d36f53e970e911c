package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/autochangelog/config.yml
// - macOS: ~/Library/Application Support/autochangelog/config.yml
// - Windows: %APPDATA%\autochangelog\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autochangelog", "config.yml"), nil
}

// ProjectConfigPath returns the project-level YAML config in repoDir.
func ProjectConfigPath(repoDir string) string {
	return filepath.Join(repoDir, ".autochangelog.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config in repoDir.
func ProjectJSONConfigPath(repoDir string) string {
	return filepath.Join(repoDir, ".autochangelog.json")
}
