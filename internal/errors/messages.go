package errors

import "fmt"

// Common error messages for autochangelog.

// MissingChangeLog creates an error for a repository without a ChangeLog file.
func MissingChangeLog(name, dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("Cannot find %s in %s", name, dir),
		fmt.Sprintf("Create an empty %s in the repository root: touch %s", name, name),
		"Or pass the repository directory explicitly with --repo",
	)
}

// NotARepository creates an error for a directory git does not recognize.
func NotARepository(dir string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("%s is not a git repository", dir),
		"Run the hook from inside a git working tree",
		"Or pass the repository directory explicitly with --repo",
	)
}

// InvalidConfig creates an error for a configuration file that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .autochangelog.yml and ~/.config/autochangelog/config.yml",
		"Environment overrides use the AUTOCHANGELOG_ prefix",
	)
}

// HookExists creates an error for an existing hook script that would be
// overwritten.
func HookExists(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("hook already exists: %s", path),
		"Re-run with --force to replace it",
		"Or chain autochangelog from the existing hook manually",
	)
}
