package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/jpallister/autochangelog/internal/errors"
)

// Hook names written by install-hooks. pre-commit runs Collect mode and
// prepare-commit-msg runs Apply mode.
var hookNames = []string{"pre-commit", "prepare-commit-msg"}

const hookTemplate = `#!/bin/sh
# Installed by autochangelog install-hooks.
exec %s --repo %s "$@"
`

var installHooksCmd = &cobra.Command{
	Use:   "install-hooks",
	Short: "Install the pre-commit and prepare-commit-msg hooks",
	Long: `Install git hooks that run autochangelog for every commit.

The pre-commit hook asks for the ChangeLog entry; the prepare-commit-msg hook
copies it into the commit message. Existing hooks are left alone unless
--force is given.`,
	Example: `  # Install into the current repository
  autochangelog install-hooks

  # Replace existing hooks
  autochangelog install-hooks --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInstallHooks,
}

var (
	installHooksForce  bool
	installHooksBinary string
)

func init() {
	installHooksCmd.Flags().BoolVarP(&installHooksForce, "force", "f", false, "Overwrite existing hooks")
	installHooksCmd.Flags().StringVar(&installHooksBinary, "binary", "", "Command the hooks run (default: this executable)")
	rootCmd.AddCommand(installHooksCmd)
}

func runInstallHooks(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	if err := env.openVCS(); err != nil {
		return err
	}

	binary := installHooksBinary
	if binary == "" {
		if binary, err = os.Executable(); err != nil {
			return fmt.Errorf("locating autochangelog executable: %w", err)
		}
	}

	hooksDir, err := env.vcs.HooksDir(cmd.Context())
	if err != nil {
		return clierrors.NotARepository(env.repo, err)
	}

	paths := make([]string, len(hookNames))
	for i, name := range hookNames {
		paths[i] = filepath.Join(hooksDir, name)
		if _, err := os.Stat(paths[i]); err == nil && !installHooksForce {
			return clierrors.HookExists(paths[i])
		}
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}

	script := hookScript(binary, env.repo)
	for _, path := range paths {
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			return fmt.Errorf("writing hook %s: %w", path, err)
		}
		// WriteFile keeps the mode of an existing file.
		if err := os.Chmod(path, 0o755); err != nil {
			return fmt.Errorf("making hook %s executable: %w", path, err)
		}
		env.logger.Debug("hook written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  + %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nDone: %d hooks installed\n", len(paths))
	return nil
}

// hookScript returns the shell script that runs binary for repo.
func hookScript(binary, repo string) string {
	return fmt.Sprintf(hookTemplate, shellQuote(binary), shellQuote(repo))
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
