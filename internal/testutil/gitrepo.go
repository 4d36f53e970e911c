// Package testutil provides test utilities and helpers for autochangelog tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// GitRepo is a throwaway git repository in a test's temp directory, with a
// committer identity of "Test <test@test.com>".
type GitRepo struct {
	t   *testing.T
	Dir string
}

// NewGitRepo initializes a repository. The test is skipped when git is not
// installed.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	r := &GitRepo{t: t, Dir: t.TempDir()}
	r.Git("init", "-q")

	// Configure git user for commits
	r.Git("config", "user.email", "test@test.com")
	r.Git("config", "user.name", "Test")
	r.Git("config", "commit.gpgsign", "false")
	return r
}

// Git runs git in the repository and returns its combined output. The test
// fails when git does.
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}

// Path returns the absolute path of name inside the repository.
func (r *GitRepo) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFile writes name, creating parent directories.
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()

	path := r.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", name, err)
	}
}

// ReadFile returns the content of name.
func (r *GitRepo) ReadFile(name string) string {
	r.t.Helper()

	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		r.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// Stage adds paths to the index.
func (r *GitRepo) Stage(paths ...string) {
	r.t.Helper()
	r.Git(append([]string{"add", "--"}, paths...)...)
}

// Commit stages everything and commits it.
func (r *GitRepo) Commit(message string) {
	r.t.Helper()
	r.Git("add", "-A")
	r.Git("commit", "-q", "-m", message)
}

// StagedFiles returns 'git diff --cached --name-only' output.
func (r *GitRepo) StagedFiles() string {
	r.t.Helper()
	return r.Git("diff", "--cached", "--name-only")
}
