package changelog

import (
	"strings"

	"github.com/jpallister/autochangelog/internal/textwrap"
)

// Layout describes the column budget of one rendering target.
type Layout struct {
	// SummaryWidth is the wrap width of the overall summary.
	SummaryWidth int
	// SummaryIndent prefixes every summary line.
	SummaryIndent string
	// FileWidth is the budget shared by a file path and the first line of its
	// description, and the wrap width of continuation lines.
	FileWidth int
	// BulletIndent prefixes the "* path: description" line.
	BulletIndent string
	// ContinuationIndent prefixes description continuation lines.
	ContinuationIndent string
}

var (
	// ChangeLogLayout is used for the entry written to the ChangeLog file.
	ChangeLogLayout = Layout{
		SummaryWidth:       70,
		SummaryIndent:      "\t",
		FileWidth:          66,
		BulletIndent:       "\t",
		ContinuationIndent: "\t    ",
	}

	// CommitLayout is used for the pre-populated commit message body.
	CommitLayout = Layout{
		SummaryWidth:       72,
		FileWidth:          64,
		BulletIndent:       "    ",
		ContinuationIndent: "        ",
	}
)

// DefaultMinWrapWidth bounds the first-line width of very long paths.
const DefaultMinWrapWidth = 20

// FormatOptions tunes rendering of file descriptions.
type FormatOptions struct {
	// MinWrapWidth is the smallest width the first description line is
	// wrapped to, however long the path. Zero means DefaultMinWrapWidth.
	MinWrapWidth int

	// LegacyContinuationGate emits continuation lines only when the overall
	// summary, as typed and untrimmed, is longer than one character, whether or not the file's own
	// description wrapped. Under a blank summary a wrapped description then
	// keeps only its first line, matching ChangeLogs written by earlier
	// releases.
	LegacyContinuationGate bool
}

func (o FormatOptions) minWidth() int {
	if o.MinWrapWidth <= 0 {
		return DefaultMinWrapWidth
	}
	return o.MinWrapWidth
}

// ChangeLog renders the entry in ChangeLog layout. The returned text ends
// with the last file line; callers add the separating blank line.
func (e *Entry) ChangeLog(opts FormatOptions) string {
	var sb strings.Builder
	sb.WriteString(e.Header())
	for _, line := range textwrap.Wrap(e.Summary, ChangeLogLayout.SummaryWidth) {
		sb.WriteString(ChangeLogLayout.SummaryIndent + line + "\n")
	}
	sb.WriteString("\n")
	e.writeFiles(&sb, ChangeLogLayout, opts)
	return sb.String()
}

// CommitMessage renders the entry as a commit message body. An empty summary
// leaves two blank lines where the summary would be.
func (e *Entry) CommitMessage(opts FormatOptions) string {
	var sb strings.Builder
	if e.Summary != "" {
		for _, line := range textwrap.Wrap(e.Summary, CommitLayout.SummaryWidth) {
			sb.WriteString(CommitLayout.SummaryIndent + line + "\n")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("\n\n")
	}
	e.writeFiles(&sb, CommitLayout, opts)
	return sb.String()
}

func (e *Entry) legacySummary() string {
	if e.RawSummary != "" {
		return e.RawSummary
	}
	return e.Summary
}

func (e *Entry) writeFiles(sb *strings.Builder, layout Layout, opts FormatOptions) {
	for _, f := range e.Files {
		wrapped := wrapFirst(f, layout, opts)
		continued := len(wrapped) > 1
		if opts.LegacyContinuationGate {
			continued = len([]rune(e.legacySummary())) > 1
		}
		for _, line := range fileLines(f.Path, wrapped, layout, continued) {
			sb.WriteString(line + "\n")
		}
	}
}

// fileLines renders one file as its bullet line followed, when continued is
// set, by the rest of the description re-wrapped to the full file width.
func fileLines(path string, wrapped []string, layout Layout, continued bool) []string {
	first := Placeholder
	if len(wrapped) > 0 {
		first = wrapped[0]
	}

	lines := []string{layout.BulletIndent + "* " + path + ": " + first}
	if !continued || len(wrapped) < 2 {
		return lines
	}

	rest := strings.Join(wrapped[1:], " ")
	for _, line := range textwrap.Wrap(rest, layout.FileWidth) {
		lines = append(lines, layout.ContinuationIndent+line)
	}
	return lines
}

// wrapFirst wraps the description to the width left beside the path.
func wrapFirst(f FileNote, layout Layout, opts FormatOptions) []string {
	width := layout.FileWidth - len([]rune(f.Path))
	if width < opts.minWidth() {
		width = opts.minWidth()
	}
	return textwrap.Wrap(f.Description, width)
}
