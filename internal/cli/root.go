package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jpallister/autochangelog/internal/changelog"
	"github.com/jpallister/autochangelog/internal/composer"
	"github.com/jpallister/autochangelog/internal/config"
	clierrors "github.com/jpallister/autochangelog/internal/errors"
	"github.com/jpallister/autochangelog/internal/git"
	"github.com/jpallister/autochangelog/internal/logging"
	"github.com/jpallister/autochangelog/internal/prompt"
	"github.com/jpallister/autochangelog/internal/scratch"
)

var rootCmd = &cobra.Command{
	Use:   "autochangelog [COMMITFILE] [COMMITARGS...]",
	Short: "Write ChangeLog entries and commit messages from git hooks",
	Long: `autochangelog asks for a description of each staged file, prepends a
ChangeLog entry built from the answers, and pre-fills the commit message
with the same text.

It runs as two git hooks:

  pre-commit          autochangelog
                      Asks the questions, updates and stages the ChangeLog,
                      and saves the commit message body.

  prepare-commit-msg  autochangelog COMMITFILE [COMMITARGS...]
                      Prepends the saved body to COMMITFILE. COMMITARGS (the
                      message source git passes for -m, -F, templates, merges
                      and amends) are ignored.

An empty COMMITFILE followed by COMMITARGS does nothing and exits 0.

Run 'autochangelog install-hooks' to set both hooks up.`,
	Example: `  # Interactive ChangeLog entry for the staged files
  autochangelog --repo .

  # Fill a commit message file
  autochangelog .git/COMMIT_EDITMSG`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().String("repo", ".", "Repository directory containing the ChangeLog")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (replaces .autochangelog.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		clierrors.FprintError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	var commitFile string
	if len(args) > 0 {
		commitFile = args[0]
	}
	// Collect mode with COMMITARGS is not a plain commit.
	if commitFile == "" && len(args) > 1 {
		return nil
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	if commitFile != "" {
		return env.composer(nil).Apply(cmd.Context(), commitFile)
	}
	return runCollect(cmd, env)
}

func runCollect(cmd *cobra.Command, env *environment) error {
	// Nothing is opened or asked before the ChangeLog is known to exist.
	if err := composer.CheckChangeLog(env.repo, env.cfg.ChangeLogFile); err != nil {
		return err
	}
	if err := env.openVCS(); err != nil {
		return err
	}

	p, closePrompter, err := newPrompter(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(cmd.Context())
	defer func() {
		if err := closePrompter(); err != nil {
			logger.Debug("closing terminal", "error", err)
		}
	}()

	err = env.composer(p).Collect(cmd.Context())
	if errors.Is(err, composer.ErrSkipped) {
		logger.Debug("changelog generation skipped")
		return nil
	}
	return err
}

// environment is the configuration and collaborators shared by commands.
type environment struct {
	cmd    *cobra.Command
	cfg    *config.Configuration
	repo   string
	logger *slog.Logger
	vcs    git.VCS
	slot   *scratch.Slot
}

// loadConfig resolves --repo and loads configuration, applying --debug and
// --no-color.
func loadConfig(cmd *cobra.Command) (*config.Configuration, string, error) {
	repoFlag, _ := cmd.Flags().GetString("repo")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	repo, err := filepath.Abs(repoFlag)
	if err != nil {
		return nil, "", fmt.Errorf("resolving repository directory %s: %w", repoFlag, err)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:    configPath,
		RepoDir:       repo,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, "", clierrors.InvalidConfig(err)
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.NoColor = true
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg, repo, nil
}

// loadEnvironment loads configuration and sets up logging. The git backend
// is opened separately by openVCS.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, repo, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.NoColor)
	git.SetDebugLogger(logging.Printf(logger))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, logger))

	logger.Debug("configuration loaded",
		"repo", repo,
		"backend", cfg.Backend,
		"changelog_file", cfg.ChangeLogFile,
	)

	slot, err := scratch.New(cfg.ScratchDir, repo)
	if err != nil {
		return nil, err
	}

	return &environment{
		cmd:    cmd,
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		slot:   slot,
	}, nil
}

// openVCS opens the configured git backend for the repository.
func (e *environment) openVCS() error {
	vcs, err := git.New(e.cfg.Backend, e.repo)
	if err != nil {
		return clierrors.NotARepository(e.repo, err)
	}
	e.vcs = vcs
	return nil
}

// composer builds the Composer for this environment. p may be nil when no
// questions will be asked, and the git backend may be unopened for Apply.
func (e *environment) composer(p prompt.Prompter) *composer.Composer {
	out := e.cmd.OutOrStdout()

	width := prompt.DefaultWidth
	if out == os.Stdout {
		width = prompt.Width()
	}

	return composer.New(composer.Config{
		VCS:      e.vcs,
		Prompter: p,
		Slot:     e.slot,
		Editor: &composer.CommandEditor{
			Command: composer.ResolveEditor(e.cfg.Editor, os.Getenv),
			Stdin:   e.cmd.InOrStdin(),
			Stdout:  out,
			Stderr:  e.cmd.ErrOrStderr(),
		},
		Out:            out,
		Logger:         e.logger,
		RepoDir:        e.repo,
		ChangeLogFile:  e.cfg.ChangeLogFile,
		GeneratedFiles: e.cfg.GeneratedFiles,
		Format: changelog.FormatOptions{
			MinWrapWidth:           e.cfg.MinWrapWidth,
			LegacyContinuationGate: e.cfg.LegacyContinuationGate,
		},
		Width: width,
	})
}

// newPrompter returns the prompter for Collect mode and a function that
// releases the terminal. When the command reads the process's standard
// input, the controlling terminal is attached to it first, since git hooks
// run detached from it; a terminal then gets the line editor.
func newPrompter(cmd *cobra.Command) (prompt.Prompter, func() error, error) {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if in != os.Stdin {
		return prompt.NewLinePrompter(in, out), func() error { return nil }, nil
	}

	detach, err := prompt.AttachTerminal()
	if err != nil {
		return nil, nil, clierrors.WrapWithMessage(err, clierrors.Prerequisite,
			"cannot read answers from the terminal",
			"Run git commit from an interactive terminal",
			"Or skip the hook for this commit with git commit --no-verify",
		)
	}

	if !prompt.IsInteractive() {
		return prompt.NewLinePrompter(os.Stdin, out), detach, nil
	}

	lp := prompt.NewLinerPrompter(out)
	return lp, func() error { return errors.Join(lp.Close(), detach()) }, nil
}
