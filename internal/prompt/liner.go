package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// LinerPrompter edits answers in place on an interactive terminal, with the
// initial text already typed in and the cursor at its end.
type LinerPrompter struct {
	state *liner.State
	w     io.Writer
}

// NewLinerPrompter puts the terminal in line-editing mode. Close must be
// called to restore it.
func NewLinerPrompter(w io.Writer) *LinerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerPrompter{state: state, w: w}
}

// Input implements Prompter. Only the last line of a multi-line question is
// handed to the line editor; earlier lines are printed before it.
func (p *LinerPrompter) Input(question, initial string) (string, error) {
	if i := strings.LastIndex(question, "\n"); i >= 0 {
		fmt.Fprint(p.w, question[:i+1])
		question = question[i+1:]
	}

	answer, err := p.state.PromptWithSuggestion(question, initial, -1)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	case errors.Is(err, io.EOF):
		return "", ErrInputClosed
	case err != nil:
		return "", fmt.Errorf("reading answer: %w", err)
	}

	if strings.TrimSpace(answer) != "" {
		p.state.AppendHistory(answer)
	}
	return answer, nil
}

// Close restores the terminal mode.
func (p *LinerPrompter) Close() error {
	return p.state.Close()
}
