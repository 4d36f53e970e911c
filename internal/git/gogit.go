package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// GoGit implements VCS with the go-git library.
type GoGit struct {
	repo *git.Repository
	root string
	dir  string
}

// OpenGoGit opens the repository containing dir. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled to traverse up the
// directory tree to find the repository root.
func OpenGoGit(dir string) (*GoGit, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", dir)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()
	logDebug("[git] repository root: %s", root)
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	return &GoGit{repo: repo, root: root, dir: abs}, nil
}

// StagedFiles compares the index with HEAD through the worktree status and
// returns every path whose staging status is not unmodified or untracked.
func (g *GoGit) StagedFiles(ctx context.Context) ([]string, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.StatusWithOptions(git.StatusOptions{Strategy: git.Preload})
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var files []string
	for path, fs := range status {
		if fs.Staging == git.Unmodified || fs.Staging == git.Untracked {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	logDebug("[git] StagedFiles: %d files", len(files))
	return files, nil
}

// UserName returns user.name merged from system, global and local config.
func (g *GoGit) UserName(ctx context.Context) (string, error) {
	cfg, err := g.config()
	if err != nil {
		return "", err
	}
	return cfg.User.Name, nil
}

// UserEmail returns user.email merged from system, global and local config.
func (g *GoGit) UserEmail(ctx context.Context) (string, error) {
	cfg, err := g.config()
	if err != nil {
		return "", err
	}
	return cfg.User.Email, nil
}

// Stage adds path, relative to the directory the backend was opened in, to
// the index.
func (g *GoGit) Stage(ctx context.Context, path string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if _, err := wt.Add(g.rootRelative(path)); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	logDebug("[git] Stage: %s", path)
	return nil
}

// HooksDir returns <root>/.git/hooks. core.hooksPath and linked worktrees
// are only honored by the CLI backend.
func (g *GoGit) HooksDir(ctx context.Context) (string, error) {
	return filepath.Join(g.root, git.GitDirName, "hooks"), nil
}

// Root returns the repository's worktree root.
func (g *GoGit) Root() string {
	return g.root
}

// rootRelative converts a path relative to the opened directory into the
// slash-separated root-relative form go-git indexes by.
func (g *GoGit) rootRelative(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.Clean(path)
	} else {
		path = filepath.Join(g.dir, path)
	}
	rel, err := filepath.Rel(g.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (g *GoGit) config() (*config.Config, error) {
	cfg, err := g.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("reading git config: %w", err)
	}
	return cfg, nil
}
