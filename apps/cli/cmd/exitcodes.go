package cmd

// Exit codes for the colrun CLI
const (
	// ExitSuccess indicates all requests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more failures or transport errors
	ExitTestFailure = 1

	// ExitUsageError indicates a usage or runtime error before any
	// request ran (bad flags, unreadable files, malformed input)
	ExitUsageError = 2
)
