package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpallister/autochangelog/internal/config"
	clierrors "github.com/jpallister/autochangelog/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage autochangelog configuration",
	Long: `Manage autochangelog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (AUTOCHANGELOG_*)
  2. --config file, or project config (.autochangelog.yml in --repo)
  3. User config (~/.config/autochangelog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  autochangelog config show

  # Write a commented project config
  autochangelog config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Write the default configuration, with every option commented, to the
project config file (.autochangelog.yml in --repo) or, with --user, to the
user config file. An existing file is left unchanged unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")
	repoFlag, _ := cmd.Flags().GetString("repo")

	var path string
	if user {
		p, err := config.UserConfigPath()
		if err != nil {
			return fmt.Errorf("locating user config: %w", err)
		}
		path = p
	} else {
		repo, err := filepath.Abs(repoFlag)
		if err != nil {
			return fmt.Errorf("resolving repository directory %s: %w", repoFlag, err)
		}
		path = config.ProjectConfigPath(repo)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return clierrors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Re-run with --force to overwrite it with the defaults",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
