package changelog

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultFileName is the conventional name of the ChangeLog file.
const DefaultFileName = "ChangeLog"

// Placeholder is recorded for a file whose description was left blank.
const Placeholder = "-"

// RegeneratedText pre-fills the description of generated build artifacts.
const RegeneratedText = "Regenerated"

// DefaultGeneratedFiles lists base names of build artifacts whose changes are
// normally just regeneration output.
var DefaultGeneratedFiles = []string{"Makefile.in", "configure", "aclocal.m4"}

// Identity is the committer recorded in the entry header.
type Identity struct {
	Name  string
	Email string
}

// FileNote is the description given for one staged file.
type FileNote struct {
	Path        string
	Description string
}

// NewFileNote builds a FileNote, substituting Placeholder for a blank description.
func NewFileNote(path, description string) FileNote {
	description = strings.TrimSpace(description)
	if description == "" {
		description = Placeholder
	}
	return FileNote{Path: path, Description: description}
}

// Entry is one composed ChangeLog entry.
type Entry struct {
	Date    time.Time
	Author  Identity
	Summary string
	// RawSummary is the summary as typed, before trimming. Only
	// LegacyContinuationGate reads it; empty means Summary.
	RawSummary string
	Files      []FileNote
}

// Header returns the "date  name  <email>" line that opens a ChangeLog entry.
func (e *Entry) Header() string {
	return e.Date.Format(time.DateOnly) + "  " + e.Author.Name + "  <" + e.Author.Email + ">\n"
}

// Paths returns the paths of all described files, in entry order.
func (e *Entry) Paths() []string {
	paths := make([]string, len(e.Files))
	for i, f := range e.Files {
		paths[i] = f.Path
	}
	return paths
}

// SuggestedDescription returns the text a description prompt for path should
// be pre-filled with: RegeneratedText for generated artifacts, otherwise "".
func SuggestedDescription(path string, generated []string) string {
	if slices.Contains(generated, filepath.Base(path)) {
		return RegeneratedText
	}
	return ""
}
