package errors

type ExitCode int

// Exit codes follow the BSD sysexits convention.
const (
	// The command line selected an unknown policy or had the wrong number of arguments.
	UsageExitCode ExitCode = 64

	// The scheduler failed while running.
	RunFailureExitCode ExitCode = 70

	// The topology document was missing, unparseable or invalid.
	ConfigExitCode ExitCode = 78
)
