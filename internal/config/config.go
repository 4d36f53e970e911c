// Package config provides hierarchical configuration management for
// autochangelog using koanf. Configuration is loaded with priority:
// environment variables > explicit or project config (.autochangelog.yml)
// > user config (~/.config/autochangelog/config.yml) > defaults.
// YAML is the primary format; files ending in .json are parsed as JSON.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "AUTOCHANGELOG_"

// Configuration represents the autochangelog configuration.
type Configuration struct {
	// ChangeLogFile is the name of the ChangeLog file in the repository directory.
	ChangeLogFile string `koanf:"changelog_file" yaml:"changelog_file" validate:"required,excludesall=/\\"`

	// GeneratedFiles lists base names whose description prompt is pre-filled
	// with "Regenerated". Via env: AUTOCHANGELOG_GENERATED_FILES=a,b,c.
	GeneratedFiles []string `koanf:"generated_files" yaml:"generated_files"`

	// ScratchDir holds the pending commit message files (default: system temp dir).
	ScratchDir string `koanf:"scratch_dir" yaml:"scratch_dir"`

	// Backend selects the git implementation: "cli" (git executable) or "go-git".
	Backend string `koanf:"backend" yaml:"backend" validate:"oneof=cli go-git"`

	// Editor is used by the review loop's edit action. Empty falls back to
	// $VISUAL, then $EDITOR, then vi.
	Editor string `koanf:"editor" yaml:"editor"`

	LogLevel string `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	NoColor  bool   `koanf:"no_color" yaml:"no_color"`

	// MinWrapWidth is the narrowest first-line width a file description is
	// wrapped to, however long the file path is.
	MinWrapWidth int `koanf:"min_wrap_width" yaml:"min_wrap_width" validate:"min=1,max=64"`

	// LegacyContinuationGate emits description continuation lines only when
	// the summary is longer than one character.
	LegacyContinuationGate bool `koanf:"legacy_continuation_gate" yaml:"legacy_continuation_gate"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file (--config). It replaces the
	// project config file.
	ConfigPath string
	// RepoDir is the repository directory searched for the project config.
	RepoDir string
	// UserConfigPath overrides the user config path (for testing).
	UserConfigPath string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// Load loads configuration for the repository at repoDir.
func Load(repoDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{RepoDir: repoDir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if err := loadOptionalFile(k, userPath, "user"); err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return nil, fmt.Errorf("config file %s not found", opts.ConfigPath)
		}
		if err := loadFile(k, opts.ConfigPath, "explicit"); err != nil {
			return nil, err
		}
	} else {
		if err := loadProjectConfig(k, opts.RepoDir, warningWriter); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads .autochangelog.yml from the repository directory,
// falling back to .autochangelog.json. Warns if both exist (YAML wins).
func loadProjectConfig(k *koanf.Koanf, repoDir string, warningWriter io.Writer) error {
	yamlPath := ProjectConfigPath(repoDir)
	jsonPath := ProjectJSONConfigPath(repoDir)

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if jsonExists {
			fmt.Fprintf(warningWriter, "Warning: both %s and %s exist; using %s\n", yamlPath, jsonPath, yamlPath)
		}
		return loadFile(k, yamlPath, "project")
	case jsonExists:
		return loadFile(k, jsonPath, "project")
	}
	return nil
}

// loadOptionalFile loads path when it exists.
func loadOptionalFile(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return nil
	}
	return loadFile(k, path, configType)
}

// loadFile loads a config file, choosing the parser by extension.
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
// List-valued keys are split on commas.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envTransform(key)
		if key == "generated_files" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.ScratchDir = expandHomePath(cfg.ScratchDir)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: AUTOCHANGELOG_CHANGELOG_FILE -> changelog_file
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
