package cli

// Exit codes for the autochangelog CLI. git aborts the commit when a hook
// exits non-zero.
const (
	// ExitSuccess indicates the hook finished, including a deliberate skip.
	ExitSuccess = 0

	// ExitFailure indicates the hook failed, for example because there is
	// no ChangeLog to write to.
	ExitFailure = 1
)
