package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates the document or a config file failed validation.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates a live resolver check could not reach or resolve an app.
	ErrConnectivity = errors.New("connectivity error")

	// ErrNotFound indicates a document, section, or config file was not found.
	ErrNotFound = errors.New("not found")
)
