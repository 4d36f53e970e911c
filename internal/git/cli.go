package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// CLI implements VCS by running the git executable in Dir.
type CLI struct {
	// Dir is the working directory git runs in.
	Dir string
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
}

// NewCLI returns a CLI backend for the repository at dir.
func NewCLI(dir string) *CLI {
	return &CLI{Dir: dir}
}

// StagedFiles runs 'git diff --name-only --cached -z'. NUL separation keeps
// paths containing spaces or non-ASCII characters intact.
func (c *CLI) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "diff", "--name-only", "--cached", "-z")
	if err != nil {
		return nil, fmt.Errorf("listing staged files: %w", err)
	}
	files := parseNulList(out)
	sort.Strings(files)
	logDebug("[git] StagedFiles: %d files", len(files))
	return files, nil
}

// UserName runs 'git config user.name'.
func (c *CLI) UserName(ctx context.Context) (string, error) {
	return c.configValue(ctx, "user.name")
}

// UserEmail runs 'git config user.email'.
func (c *CLI) UserEmail(ctx context.Context) (string, error) {
	return c.configValue(ctx, "user.email")
}

// Stage runs 'git add -- path'.
func (c *CLI) Stage(ctx context.Context, path string) error {
	if _, err := c.run(ctx, "add", "--", path); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	logDebug("[git] Stage: %s", path)
	return nil
}

// HooksDir runs 'git rev-parse --git-path hooks', which honors core.hooksPath
// and linked worktrees.
func (c *CLI) HooksDir(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("locating hooks directory: %w", err)
	}
	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Dir, dir)
	}
	return filepath.Abs(dir)
}

// configValue reads a single config key. git exits with status 1 when the
// key is unset, which is reported as an empty value.
func (c *CLI) configValue(ctx context.Context, key string) (string, error) {
	out, err := c.run(ctx, "config", key)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			logDebug("[git] config %s: unset", key)
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	value := strings.TrimSpace(string(out))
	logDebug("[git] config %s: %s", key, value)
	return value, nil
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logDebug("[git] running git %s in %s", strings.Join(args, " "), c.Dir)
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %s: %w", args[0], msg, err)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// parseNulList splits NUL-terminated output, dropping empty items.
func parseNulList(out []byte) []string {
	var items []string
	for _, item := range bytes.Split(out, []byte{0}) {
		if len(item) > 0 {
			items = append(items, string(item))
		}
	}
	return items
}
