package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"

	"github.com/jpallister/autochangelog/internal/changelog"
	clierrors "github.com/jpallister/autochangelog/internal/errors"
	"github.com/jpallister/autochangelog/internal/git"
	"github.com/jpallister/autochangelog/internal/prompt"
	"github.com/jpallister/autochangelog/internal/scratch"
)

// ErrSkipped is returned by Collect when the committer chose not to generate
// an entry. It is a successful outcome.
var ErrSkipped = errors.New("changelog generation skipped")

var highlight = color.New(color.FgGreen)

// Config wires a Composer to its collaborators.
type Config struct {
	VCS      git.VCS
	Prompter prompt.Prompter
	Slot     *scratch.Slot
	// Editor edits the composed entry in the review loop.
	Editor Editor
	// Out receives messages and listings shown to the committer.
	Out io.Writer
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// RepoDir is the repository directory holding the ChangeLog.
	RepoDir string
	// ChangeLogFile is the ChangeLog file name. Empty means "ChangeLog".
	ChangeLogFile string
	// GeneratedFiles are base names whose description defaults to "Regenerated".
	GeneratedFiles []string
	Format         changelog.FormatOptions

	// Now returns the entry date. Nil means time.Now.
	Now func() time.Time
	// Width is the terminal width used for the staged file listing.
	// Zero means prompt.DefaultWidth.
	Width int
}

// Composer runs the Collect and Apply hook procedures.
type Composer struct {
	cfg Config
	log *slog.Logger
}

// New returns a Composer for cfg.
func New(cfg Config) *Composer {
	if cfg.ChangeLogFile == "" {
		cfg.ChangeLogFile = changelog.DefaultFileName
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Width <= 0 {
		cfg.Width = prompt.DefaultWidth
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Composer{cfg: cfg, log: log}
}

// ChangeLogPath returns the path of the ChangeLog file.
func (c *Composer) ChangeLogPath() string {
	return filepath.Join(c.cfg.RepoDir, c.cfg.ChangeLogFile)
}

// CheckChangeLog returns a Prerequisite error when repoDir has no ChangeLog
// file named name. An empty name means changelog.DefaultFileName.
func CheckChangeLog(repoDir, name string) error {
	if name == "" {
		name = changelog.DefaultFileName
	}
	path := filepath.Join(repoDir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return clierrors.MissingChangeLog(name, repoDir)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// Collect asks for the entry, writes and stages the ChangeLog, and saves the
// commit message body for Apply. It returns ErrSkipped when the committer
// declines because the ChangeLog is already staged, and a Prerequisite
// error when there is no ChangeLog to write to.
func (c *Composer) Collect(ctx context.Context) error {
	if err := CheckChangeLog(c.cfg.RepoDir, c.cfg.ChangeLogFile); err != nil {
		return err
	}
	path := c.ChangeLogPath()

	staged, err := c.cfg.VCS.StagedFiles(ctx)
	if err != nil {
		return err
	}
	c.log.Debug("staged files listed", "count", len(staged))

	author, err := c.defaultIdentity(ctx)
	if err != nil {
		return err
	}

	if slices.Contains(staged, c.cfg.ChangeLogFile) {
		fmt.Fprintf(c.cfg.Out, "%s already staged for commit.\n", c.cfg.ChangeLogFile)
		skip, err := prompt.Confirm(c.cfg.Prompter, "Skip changelog+commit msg generation?", true)
		if err != nil {
			return err
		}
		if skip {
			return ErrSkipped
		}
	}

	entry, err := c.compose(staged, author)
	if err != nil {
		return err
	}

	text, err := c.review(ctx, entry.ChangeLog(c.cfg.Format))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.cfg.Out, "Added entry to %s\n", c.cfg.ChangeLogFile)
	if err := prependFile(path, text+"\n"); err != nil {
		return err
	}
	c.log.Debug("changelog updated", "path", path)

	if err := c.cfg.VCS.Stage(ctx, c.cfg.ChangeLogFile); err != nil {
		return err
	}

	if err := c.cfg.Slot.Save(entry.CommitMessage(c.cfg.Format)); err != nil {
		return err
	}
	c.log.Debug("commit message saved", "path", c.cfg.Slot.Path())
	return nil
}

// Apply prepends the pending commit message body, if any, to the commit
// message file at commitFile.
func (c *Composer) Apply(ctx context.Context, commitFile string) error {
	body, err := c.cfg.Slot.Load()
	if err != nil {
		return err
	}
	if body == "" {
		c.log.Debug("no pending commit message", "slot", c.cfg.Slot.Path())
	}
	if err := prependFile(commitFile, body); err != nil {
		return err
	}
	c.log.Debug("commit message prepared", "path", commitFile, "bytes", len(body))
	return nil
}

// defaultIdentity reads the committer identity configured in git.
func (c *Composer) defaultIdentity(ctx context.Context) (changelog.Identity, error) {
	name, err := c.cfg.VCS.UserName(ctx)
	if err != nil {
		return changelog.Identity{}, err
	}
	email, err := c.cfg.VCS.UserEmail(ctx)
	if err != nil {
		return changelog.Identity{}, err
	}
	return changelog.Identity{Name: name, Email: email}, nil
}

// compose runs the interactive questions and builds the entry.
func (c *Composer) compose(staged []string, author changelog.Identity) (*changelog.Entry, error) {
	p := c.cfg.Prompter

	name, err := p.Input("Name: ", author.Name)
	if err != nil {
		return nil, err
	}
	email, err := p.Input("Email: ", author.Email)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(c.cfg.Out)

	question := fmt.Sprintf("There are %d files staged for commit. Do you want to see a list?", len(staged))
	show, err := prompt.Confirm(p, question, false)
	if err != nil {
		return nil, err
	}
	if show {
		highlight.Fprint(c.cfg.Out, formatStagedList(staged, c.cfg.Width))
		fmt.Fprintln(c.cfg.Out)
	}

	summary, err := p.Input("Enter a description of the changes:\n > ", "")
	if err != nil {
		return nil, err
	}

	entry := &changelog.Entry{
		Date:       c.cfg.Now(),
		Author:     changelog.Identity{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)},
		Summary:    strings.TrimSpace(summary),
		RawSummary: summary,
	}

	for _, f := range staged {
		if f == c.cfg.ChangeLogFile {
			continue
		}
		initial := changelog.SuggestedDescription(f, c.cfg.GeneratedFiles)
		desc, err := p.Input(fmt.Sprintf("Enter a description of the changes for %s.\n > ", f), initial)
		if err != nil {
			return nil, err
		}
		entry.Files = append(entry.Files, changelog.NewFileNote(f, desc))
	}

	return entry, nil
}

// review offers to view or edit the entry text until the committer continues.
func (c *Composer) review(ctx context.Context, text string) (string, error) {
	for {
		action, err := prompt.Choice(c.cfg.Prompter, "ChangeLog entry generated, view, edit or continue", []string{"v", "e", "c"})
		if err != nil {
			return "", err
		}

		switch action {
		case "v":
			highlight.Fprintln(c.cfg.Out, text)
		case "e":
			text = c.edit(ctx, text)
		case "c":
			return text, nil
		}
	}
}

// edit runs the editor on text. On failure, or when the result is blank,
// the previous text is kept.
func (c *Composer) edit(ctx context.Context, text string) string {
	if c.cfg.Editor == nil {
		fmt.Fprintln(c.cfg.Out, "No editor configured; entry unchanged.")
		return text
	}

	edited, err := c.cfg.Editor.Edit(ctx, text)
	if err != nil {
		c.log.Warn("editing entry failed", "error", err)
		fmt.Fprintf(c.cfg.Out, "Editing failed, entry unchanged: %v\n", err)
		return text
	}
	if strings.TrimSpace(edited) == "" {
		fmt.Fprintln(c.cfg.Out, "Edited entry is empty; entry unchanged.")
		return text
	}
	if !strings.HasSuffix(edited, "\n") {
		edited += "\n"
	}
	return edited
}

// formatStagedList pads every path to the longest one and wraps the row to
// the terminal, indenting each line by three spaces.
func formatStagedList(files []string, width int) string {
	if len(files) == 0 {
		return ""
	}

	longest := 0
	for _, f := range files {
		longest = max(longest, len(f))
	}
	padded := make([]string, len(files))
	for i, f := range files {
		padded[i] = f + strings.Repeat(" ", longest-len(f))
	}

	limit := max(width-3, 20)
	wrapped := wordwrap.WrapString(strings.Join(padded, "  "), uint(limit))
	return "   " + strings.Join(strings.Split(wrapped, "\n"), "\n   ") + "\n"
}
