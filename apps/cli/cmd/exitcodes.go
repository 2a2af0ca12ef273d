package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/oohttp/packages/http"
	"github.com/abdul-hamid-achik/oohttp/packages/url"
)

// Exit codes for oohttp CLI
const (
	// ExitSuccess indicates the request succeeded
	ExitSuccess = 0

	// ExitRequestFailure indicates a non-2xx response or a failed --schema check
	ExitRequestFailure = 1

	// ExitInvalidURL indicates a URL that could not be parsed or sent
	ExitInvalidURL = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the exit code for an error that has already been
// reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps err to a process exit code. Errors not raised by a command
// come from cobra's argument and flag parsing.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

// requestExitCode classifies an error returned while building or sending a
// request.
func requestExitCode(err error) int {
	var se *http.StatusError
	switch {
	case errors.As(err, &se), errors.Is(err, http.ErrSchemaMismatch):
		return ExitRequestFailure
	case errors.Is(err, http.ErrInvalidSchema):
		return ExitUsageError
	case errors.Is(err, url.ErrInvalidURL),
		errors.Is(err, http.ErrUnsupportedProtocol),
		errors.Is(err, http.ErrMissingHost):
		return ExitInvalidURL
	default:
		return ExitNetworkError
	}
}
