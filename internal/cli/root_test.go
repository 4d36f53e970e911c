// Package cli tests the root command, hook dispatch and global flags for
// autochangelog.
// Related: internal/cli/root.go
// Tags: cli, root, collect, apply, global-flags
package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/jpallister/autochangelog/internal/errors"
	"github.com/jpallister/autochangelog/internal/testutil"
)

// Tests that execute rootCmd share its flags and streams and cannot run in
// parallel.

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "autochangelog", rootCmd.Name())
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
		wantDef  string
	}{
		"repo flag defaults to current directory": {flagName: "repo", wantDef: "."},
		"config flag exists":                      {flagName: "config", wantDef: ""},
		"debug flag exists":                       {flagName: "debug", wantDef: "false"},
		"no-color flag exists":                    {flagName: "no-color", wantDef: "false"},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantDef, flag.DefValue)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["install-hooks"])
	assert.True(t, names["version"])
	assert.True(t, names["config"])
}

func TestRootCmd_Help(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "autochangelog [COMMITFILE] [COMMITARGS...]")
	assert.Contains(t, stdout, "prepare-commit-msg  autochangelog COMMITFILE [COMMITARGS...]")
	assert.Contains(t, stdout, "install-hooks")
	assert.Contains(t, stdout, "--repo")
}

// isolate keeps user configuration, editors and scratch files of the
// machine running the tests out of the command.
func isolate(t *testing.T) string {
	t.Helper()

	scratchDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUTOCHANGELOG_SCRATCH_DIR", scratchDir)
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	return scratchDir
}

// resetCommandFlags restores every flag of cmd and its subcommands to its
// default, since cobra keeps parsed values between executions.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetCommandFlags(c)
	}
}

// execute runs rootCmd with args, feeding stdin, and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeIn(t, strings.NewReader(stdin), args...)
}

// executeIn is execute with an arbitrary input stream. Passing os.Stdin
// makes Collect mode attach the controlling terminal.
func executeIn(t *testing.T, in io.Reader, args ...string) (string, string, error) {
	t.Helper()

	resetCommandFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(in)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

const oldChangeLog = "2026-01-02  Old Hand  <old@example.com>\n\n\t* README.md: New file.\n"

// initRepo creates a repository with one commit. The ChangeLog is part of
// that commit when withChangeLog is set.
func initRepo(t *testing.T, withChangeLog bool) *testutil.GitRepo {
	t.Helper()

	repo := testutil.NewGitRepo(t)
	repo.WriteFile("README.md", "# Test\n")
	if withChangeLog {
		repo.WriteFile("ChangeLog", oldChangeLog)
	}
	repo.Commit("Initial commit")
	return repo
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func answers(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRun_CommitArgsWithoutCommitFileDoNothing(t *testing.T) {
	scratchDir := isolate(t)
	r := initRepo(t, true)
	r.WriteFile("a.c", "x\n")
	r.Stage("a.c")

	stdout, _, err := execute(t, "", "--repo", r.Dir, "", "merge")
	require.NoError(t, err)
	assert.Empty(t, stdout, "nothing is asked")
	assert.Equal(t, oldChangeLog, r.ReadFile("ChangeLog"))

	entries, err := os.ReadDir(scratchDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no commit message is saved")
}

func TestRun_ApplyIgnoresCommitArgs(t *testing.T) {
	isolate(t)
	r := initRepo(t, true)
	r.WriteFile("a.c", "x\n")
	r.Stage("a.c")

	_, _, err := execute(t, answers("", "", "", "Fix bug", "fix null deref", "c"), "--repo", r.Dir)
	require.NoError(t, err)

	tests := map[string]string{
		"message from -m": "message",
		"commit.template": "template",
		"merge commit":    "merge",
		"amended commit":  "commit",
	}

	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
			writeFile(t, filepath.Dir(msgFile), "COMMIT_EDITMSG", "template text\n")

			args := []string{"--repo", r.Dir, msgFile, source}
			if source == "commit" {
				args = append(args, "HEAD")
			}
			_, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, "Fix bug\n\n    * a.c: fix null deref\ntemplate text\n", readFile(t, msgFile))
		})
	}
}

func TestRun_ApplyOutsideRepository(t *testing.T) {
	isolate(t)
	t.Setenv("AUTOCHANGELOG_BACKEND", "go-git")

	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	writeFile(t, filepath.Dir(msgFile), "COMMIT_EDITMSG", "message\n")

	_, _, err := execute(t, "", "--repo", t.TempDir(), msgFile)
	require.NoError(t, err, "Apply needs no git backend")
	assert.Equal(t, "message\n", readFile(t, msgFile))
}

func TestRun_MissingChangeLog(t *testing.T) {
	isolate(t)
	r := initRepo(t, false)
	repo := r.Dir

	stdout, _, err := execute(t, "", "--repo", repo)
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Prerequisite, cliErr.Category)
	assert.Equal(t, "Cannot find ChangeLog in "+repo, cliErr.Message)
	assert.Empty(t, stdout, "nothing is asked")

	_, statErr := os.Stat(filepath.Join(repo, "ChangeLog"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingChangeLogBeforeTerminal(t *testing.T) {
	isolate(t)
	r := initRepo(t, false)

	// The process stdin selects the /dev/tty path, which fails when the
	// tests run without a controlling terminal.
	stdout, _, err := executeIn(t, os.Stdin, "--repo", r.Dir)
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Prerequisite, cliErr.Category)
	assert.Equal(t, "Cannot find ChangeLog in "+r.Dir, cliErr.Message)
	assert.Empty(t, stdout)
}

func TestRun_MissingChangeLogOutsideRepository(t *testing.T) {
	tests := map[string]string{
		"cli backend":    "cli",
		"go-git backend": "go-git",
	}

	for name, backend := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv("AUTOCHANGELOG_BACKEND", backend)
			dir := t.TempDir()

			_, _, err := execute(t, "", "--repo", dir)
			require.Error(t, err)

			cliErr := clierrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, "Cannot find ChangeLog in "+dir, cliErr.Message)
		})
	}
}

func TestRun_CollectThenApply(t *testing.T) {
	tests := map[string]string{
		"cli backend":    "cli",
		"go-git backend": "go-git",
	}

	for name, backend := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv("AUTOCHANGELOG_BACKEND", backend)

			r := initRepo(t, true)
			repo := r.Dir
			r.WriteFile("a.c", "int main(void) { return 0; }\n")
			r.WriteFile("Makefile.in", "all:\n")
			r.Stage("a.c", "Makefile.in")

			stdout, _, err := execute(t, answers(
				"", "", "", // identity, no listing
				"Fix bug",
				"",               // Makefile.in, accept "Regenerated"
				"fix null deref", // a.c
				"c",
			), "--repo", repo)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Added entry to ChangeLog")

			content := readFile(t, filepath.Join(repo, "ChangeLog"))
			assert.Contains(t, content, "  Test  <test@test.com>\n"+
				"\tFix bug\n"+
				"\n"+
				"\t* Makefile.in: Regenerated\n"+
				"\t* a.c: fix null deref\n"+
				"\n"+oldChangeLog)

			assert.Contains(t, r.StagedFiles(), "ChangeLog\n", "ChangeLog is staged")

			msgFile := filepath.Join(repo, ".git", "COMMIT_EDITMSG")
			r.WriteFile(filepath.Join(".git", "COMMIT_EDITMSG"), "\n# Please enter the commit message\n")

			_, _, err = execute(t, "", "--repo", repo, msgFile)
			require.NoError(t, err)
			assert.Equal(t, "Fix bug\n\n"+
				"    * Makefile.in: Regenerated\n"+
				"    * a.c: fix null deref\n"+
				"\n# Please enter the commit message\n", readFile(t, msgFile))
		})
	}
}

func TestRun_ApplyWithoutPendingMessage(t *testing.T) {
	isolate(t)
	r := initRepo(t, true)
	repo := r.Dir

	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	writeFile(t, filepath.Dir(msgFile), "COMMIT_EDITMSG", "# comments\n")

	_, _, err := execute(t, "", "--repo", repo, msgFile)
	require.NoError(t, err)
	assert.Equal(t, "# comments\n", readFile(t, msgFile))
}

func TestRun_ChangeLogAlreadyStaged(t *testing.T) {
	isolate(t)
	r := initRepo(t, true)
	repo := r.Dir
	r.WriteFile("ChangeLog", "hand written\n\n"+oldChangeLog)
	r.WriteFile("a.c", "x\n")
	r.Stage("ChangeLog", "a.c")

	stdout, _, err := execute(t, answers(""), "--repo", repo)
	require.NoError(t, err, "skipping is a success")

	assert.Contains(t, stdout, "ChangeLog already staged for commit.\n")
	assert.Equal(t, "hand written\n\n"+oldChangeLog, readFile(t, filepath.Join(repo, "ChangeLog")))
}

func TestRun_InvalidConfig(t *testing.T) {
	isolate(t)
	r := initRepo(t, true)
	repo := r.Dir

	_, _, err := execute(t, "", "--repo", repo, "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Configuration, cliErr.Category)
}

func TestRun_DebugLogsToStderr(t *testing.T) {
	isolate(t)
	r := initRepo(t, true)
	repo := r.Dir

	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	writeFile(t, filepath.Dir(msgFile), "COMMIT_EDITMSG", "")

	stdout, stderr, err := execute(t, "", "--repo", repo, "--debug", "--no-color", msgFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "configuration loaded")
	assert.Contains(t, stderr, "no pending commit message")
}

func TestExecute_PrintsError(t *testing.T) {
	isolate(t)
	r := initRepo(t, false)
	repo := r.Dir

	// Reset flags and streams through execute, then run Execute itself.
	_, _, _ = execute(t, "", "version", "--plain")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--repo", repo, "--no-color"})

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Cannot find ChangeLog in "+repo)
	assert.Contains(t, stderr.String(), "touch ChangeLog")
}
