package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the oep binary.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1

	// ExitValidationError means the document failed validation or needs normalization.
	ExitValidationError = 2

	// ExitConnectivityError means one or more apps failed live resolution.
	ExitConnectivityError = 3

	// ExitNotFound means a document, section, or config file was not found.
	ExitNotFound = 5
)

var exitCodeNames = map[int]string{
	ExitSuccess:           "success",
	ExitGeneralError:      "general error",
	ExitValidationError:   "validation error",
	ExitConnectivityError: "connectivity error",
	ExitNotFound:          "not found",
}

// sentinelCodes maps sentinels to exit codes, checked in order.
var sentinelCodes = []struct {
	err  error
	code int
}{
	{ErrValidation, ExitValidationError},
	{ErrConnectivity, ExitConnectivityError},
	{ErrNotFound, ExitNotFound},
}

// ExitError wraps an error with the exit code the process should end with.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the failure, so
	// main only sets the exit code.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d (%s)", e.Code, ExitCodeName(e.Code))
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// IsPrinted reports whether err carries an ExitError that was already
// reported to the user.
func IsPrinted(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Printed
}

// ExitCodeFromError returns the code of the outermost ExitError in err's
// chain, else the code of the first sentinel it wraps, else the general
// error code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return ExitGeneralError
}

// ExitCodeName returns a short name for an exit code.
func ExitCodeName(code int) string {
	if name, ok := exitCodeNames[code]; ok {
		return name
	}
	return "unknown"
}
