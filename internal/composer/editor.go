package composer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Editor lets the committer revise the composed ChangeLog entry.
type Editor interface {
	Edit(ctx context.Context, text string) (string, error)
}

// CommandEditor runs an external editor on a temporary copy of the text.
type CommandEditor struct {
	// Command is the editor command line; the file name is appended.
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// ResolveEditor picks the editor command: configured, then $VISUAL, then
// $EDITOR, then vi.
func ResolveEditor(configured string, getenv func(string) string) string {
	for _, candidate := range []string{configured, getenv("VISUAL"), getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

// Edit implements Editor.
func (e *CommandEditor) Edit(ctx context.Context, text string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", fmt.Errorf("no editor command")
	}

	f, err := os.CreateTemp("", "ChangeLog.*.txt")
	if err != nil {
		return "", fmt.Errorf("creating edit file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", fmt.Errorf("writing edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing edit file: %w", err)
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running editor %s: %w", args[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edited entry: %w", err)
	}
	return string(data), nil
}
