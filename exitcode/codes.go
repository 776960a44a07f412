// Package exitcode defines the exit codes gopause reports and a typed error
// that carries one. Scripts keying off the exit status get a stable contract
// without parsing stderr.
package exitcode

import (
	"errors"
	"fmt"
)

// Exit codes. These are part of the CLI contract and must not be renumbered.
const (
	// Success indicates the toggle completed (or would have, under --dry-run).
	Success = 0

	// ErrGeneral covers selection-flag misuse, self-target rejection, signal
	// delivery failure on the root process, and timed-out external queries.
	ErrGeneral = 1

	// ErrInvalidPid is returned when the pid argument is not a non-negative
	// decimal integer (e.g. the "null" sentinel from a headless session).
	ErrInvalidPid = 2

	// ErrHelperMissing is returned when a required external helper tool
	// (window query command, picker, loginctl) is not installed.
	ErrHelperMissing = 127

	// ErrEnvironment is returned when the session/desktop cannot be detected
	// or has no supported backend, or when the target process does not exist.
	ErrEnvironment = 130
)

// Error wraps an error with a specific exit code.
type Error struct {
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error with the given exit code.
func New(code int, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given exit code and formatted message.
func Newf(code int, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an exit code and message to an underlying cause.
func Wrap(code int, message string, cause error) error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Code extracts the exit code from an error chain. Errors without a coded
// Error in their chain map to ErrGeneral; nil maps to Success.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrGeneral
}

// Is reports whether the error chain carries the given exit code.
func Is(err error, code int) bool {
	return err != nil && Code(err) == code
}
