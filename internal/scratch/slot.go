// Package scratch persists the pending commit message body between the
// pre-commit and prepare-commit-msg invocations of the hook.
//
// There is one slot per repository directory, named after a hash of the
// directory's absolute path. A later Save for the same directory overwrites
// the earlier body; Load never removes it.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// FilePrefix is prepended to the directory hash to form the slot file name.
const FilePrefix = "tmpcommit."

// Slot is the pending commit message cell for one repository directory.
type Slot struct {
	// Dir is the directory holding slot files. Empty means os.TempDir().
	Dir string
	// RepoDir is the absolute repository directory the slot belongs to.
	RepoDir string
}

// New returns the slot for repoDir, resolving it to an absolute path.
func New(dir, repoDir string) (*Slot, error) {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving repository directory %s: %w", repoDir, err)
	}
	return &Slot{Dir: dir, RepoDir: abs}, nil
}

// Key returns the hash that names the slot file.
func (s *Slot) Key() string {
	return strconv.FormatUint(xxhash.Sum64String(s.RepoDir), 16)
}

// Path returns the slot file path.
func (s *Slot) Path() string {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, FilePrefix+s.Key())
}

// Save replaces the slot content with body. A reader never sees a partial
// body.
func (s *Slot) Save(body string) error {
	if err := WriteFile(s.Path(), []byte(body), 0o600); err != nil {
		return fmt.Errorf("saving scratch file: %w", err)
	}
	return nil
}

// Load returns the pending body, or "" when nothing was saved for this
// directory.
func (s *Slot) Load() (string, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading scratch file: %w", err)
	}
	return string(data), nil
}

// WriteFile writes data to path through a temporary file in the same
// directory and a rename, so path holds either its old or its new content.
// The file ends up with mode perm.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode of temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
