// Package prompt asks the committer questions on the terminal.
//
// A Prompter answers "question with pre-filled text" requests. On a real
// terminal the pre-filled text is placed in an editable line; elsewhere it
// is shown as a default that a blank answer accepts. Choice builds the
// "[y/N]" style menus on top of any Prompter.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInputClosed is returned when the input ends before an answer is given.
var ErrInputClosed = errors.New("prompt: input closed")

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// Prompter asks a single question.
type Prompter interface {
	// Input asks question and returns the answer. initial is offered as the
	// starting text of the answer.
	Input(question, initial string) (string, error)
}

// Choice asks question until one of choices is given and returns it in lower
// case. The menu is rendered as "question [a/B/c] ". A blank answer selects
// the first upper-case choice; when no choice is upper-case a blank answer
// asks again.
func Choice(p Prompter, question string, choices []string) (string, error) {
	menu := fmt.Sprintf("%s [%s] ", question, strings.Join(choices, "/"))
	for {
		answer, err := p.Input(menu, "")
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)

		if answer == "" {
			if def, ok := defaultChoice(choices); ok {
				return def, nil
			}
			continue
		}
		for _, c := range choices {
			if strings.EqualFold(answer, c) {
				return strings.ToLower(c), nil
			}
		}
	}
}

// Confirm asks a yes/no question. def is the answer a blank line selects.
func Confirm(p Prompter, question string, def bool) (bool, error) {
	choices := []string{"y", "N"}
	if def {
		choices = []string{"Y", "n"}
	}
	answer, err := Choice(p, question, choices)
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

func defaultChoice(choices []string) (string, bool) {
	for _, c := range choices {
		if c != strings.ToLower(c) {
			return strings.ToLower(c), true
		}
	}
	return "", false
}
