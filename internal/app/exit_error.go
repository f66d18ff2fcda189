package app

import "errors"

// Exit codes returned by RunWithOptions.
const (
	ExitOK = 0
	// ExitFailure: configuration errors, or no character produced a report.
	ExitFailure = 1
	// ExitPartial: at least one character was reported but another character,
	// an export or the curves failed.
	ExitPartial = 2
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func ExitWithError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func asExitError(err error) (ExitError, bool) {
	var ee ExitError
	if errors.As(err, &ee) {
		return ee, true
	}
	return ExitError{}, false
}
