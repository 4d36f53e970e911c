package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jpallister/autochangelog/internal/changelog"
	"github.com/jpallister/autochangelog/internal/git"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# autochangelog configuration

changelog_file: ChangeLog             # ChangeLog file name in the repository directory
generated_files:                      # Pre-fill "Regenerated" for these base names
  - Makefile.in
  - configure
  - aclocal.m4
scratch_dir: ""                       # Pending commit messages (empty = system temp dir)
backend: cli                          # Git implementation: cli | go-git
editor: ""                            # Review-loop editor (empty = $VISUAL, $EDITOR, vi)
log_level: info                       # debug | info | warn | error
no_color: false                       # Disable colored prompts
min_wrap_width: 20                    # Narrowest description width beside long paths
legacy_continuation_gate: false       # Continuation lines only under a non-trivial summary
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file":           changelog.DefaultFileName,
		"generated_files":          append([]string(nil), changelog.DefaultGeneratedFiles...),
		"scratch_dir":              "",
		"backend":                  git.BackendCLI,
		"editor":                   "",
		"log_level":                "info",
		"no_color":                 false,
		"min_wrap_width":           changelog.DefaultMinWrapWidth,
		"legacy_continuation_gate": false,
	}
}

// Marshal renders cfg as YAML in the config file format.
func Marshal(cfg *Configuration) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return data, nil
}
