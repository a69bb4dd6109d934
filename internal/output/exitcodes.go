package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (missing export dir, bad flags, unreadable rules file)
// 2 = System error (I/O failure writing posts)
// 3 = No suitable source file in the export
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitNoSource    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for configuration problems (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewNoSourceError creates an error for exports without post content (exit code 3).
// The cause keeps the selector's diagnostic error reachable via errors.As.
func NewNoSourceError(cause error) *ExitError {
	return &ExitError{Code: ExitNoSource, Message: cause.Error(), Cause: cause}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for errors without a code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
