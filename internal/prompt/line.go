package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter reads whole lines from a reader. It cannot pre-fill the
// answer, so initial text is shown in brackets and returned for a blank line.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter returns a LinePrompter reading from r and writing
// questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Input implements Prompter.
func (p *LinePrompter) Input(question, initial string) (string, error) {
	if initial != "" {
		fmt.Fprintf(p.w, "%s[%s] ", question, initial)
	} else {
		fmt.Fprint(p.w, question)
	}

	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(answer) == "" {
		return initial, nil
	}
	return answer, nil
}
