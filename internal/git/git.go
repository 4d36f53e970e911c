// Package git provides the version-control operations the commit hooks need:
// listing staged paths, reading the configured committer identity, staging a
// file and locating the hooks directory.
//
// Two backends implement VCS. The CLI backend runs the git executable, which
// honors every configuration source git itself reads and is the default
// inside hooks. The go-git backend uses the pure Go go-git library and works
// without a git installation.
package git

import (
	"context"
	"fmt"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// VCS is the version-control collaborator of the composer.
type VCS interface {
	// StagedFiles returns repository-relative paths staged for commit, sorted.
	StagedFiles(ctx context.Context) ([]string, error)
	// UserName returns the configured user.name, or "" when unset.
	UserName(ctx context.Context) (string, error)
	// UserEmail returns the configured user.email, or "" when unset.
	UserEmail(ctx context.Context) (string, error)
	// Stage adds path to the index.
	Stage(ctx context.Context, path string) error
	// HooksDir returns the absolute path of the repository's hooks directory.
	HooksDir(ctx context.Context) (string, error)
}

// Backend names accepted by New.
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// New returns the backend named by backend for the repository at dir.
// An empty backend selects the CLI backend.
func New(backend, dir string) (VCS, error) {
	switch backend {
	case "", BackendCLI:
		return NewCLI(dir), nil
	case BackendGoGit:
		return OpenGoGit(dir)
	default:
		return nil, fmt.Errorf("unknown git backend %q (want %s or %s)", backend, BackendCLI, BackendGoGit)
	}
}
