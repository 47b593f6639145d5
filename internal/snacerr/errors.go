// Package snacerr defines the exit-code taxonomy shared by every command.
package snacerr

import "errors"

// Process exit codes.
const (
	ExOK             = 0
	ExError          = 1
	ExUsage          = 2
	ExBadEnvironment = 128
	ExCheckFailure   = 129
)

// Error is an error that carries the process exit code the failure maps to.
// Setup failures in the capture subsystem and prereq checks use
// ExBadEnvironment; verification failures use ExCheckFailure.
type Error struct {
	Code int
	msg  string
	err  error
}

// New returns an Error with the given message and exit code.
func New(msg string, code int) *Error {
	return &Error{Code: code, msg: msg}
}

// Wrap returns an Error with the given message and exit code, chaining the
// underlying cause for errors.Is/As.
func Wrap(err error, msg string, code int) *Error {
	return &Error{Code: code, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// CodeOf maps an error to a process exit code. nil maps to ExOK and
// untyped errors map to ExError.
func CodeOf(err error) int {
	if err == nil {
		return ExOK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ExError
}
