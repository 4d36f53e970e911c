package prompt

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 70

// IsInteractive reports whether standard input and output are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the width of the terminal on standard output, or
// DefaultWidth when it is not a terminal.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// AttachTerminal makes the controlling terminal the process's standard input
// when it is not one already. git runs hooks with standard input detached
// from the terminal, so without this no prompt could be answered. The
// returned function closes the extra terminal handle.
func AttachTerminal() (func() error, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return func() error { return nil }, nil
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening controlling terminal: %w", err)
	}
	if err := redirectStdin(int(tty.Fd())); err != nil {
		tty.Close()
		return nil, fmt.Errorf("attaching terminal to standard input: %w", err)
	}
	return tty.Close, nil
}
