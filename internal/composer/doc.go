// Package composer implements the two hook entry points.
//
// Collect runs from pre-commit: it asks the committer to describe the commit
// and each staged file, prepends the resulting entry to the ChangeLog, stages
// the ChangeLog and leaves the matching commit message body in the scratch
// slot. Apply runs from prepare-commit-msg: it prepends that body to the
// commit message file git is about to open in the editor.
package composer
