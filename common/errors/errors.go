package errors

// ExitCodeError carries the process exit code a fatal error should produce.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *ExitCodeError) Unwrap() error {
	return e.error
}

// ExitCodeOf returns the exit code attached to err, RunFailureExitCode for
// any other non-nil error, and 0 for nil.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	if ece, ok := err.(*ExitCodeError); ok {
		return ece.GetExitCode()
	}
	return RunFailureExitCode
}
