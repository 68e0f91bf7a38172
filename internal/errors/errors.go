// Package errors provides the error types and sentinels shared by the oep CLI.
package errors

import "strings"

// DetailError is a user-facing error that points into the applications
// document or a file next to it. It renders as a compiler-style location
// prefix followed by the message, with the involved apps and a hint on
// indented lines below.
type DetailError struct {
	// Kind is the sentinel the error unwraps to.
	Kind error

	Message string

	// Path is the file the error refers to.
	Path string

	// App identifies a single offending entry.
	App string

	// Field is the entry field, when the error is about one.
	Field string

	// Apps lists the entries involved when there is more than one.
	Apps []string

	Hint string
}

func (e *DetailError) Error() string {
	var b strings.Builder
	for _, part := range []string{e.Path, e.App, e.Field} {
		if part != "" {
			b.WriteString(part)
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Message)
	if len(e.Apps) > 0 {
		b.WriteString("\n  apps: ")
		b.WriteString(strings.Join(e.Apps, ", "))
	}
	if e.Hint != "" {
		b.WriteString("\n  hint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Kind
}

// NewValidationError reports a problem with the content of path.
func NewValidationError(message, path, field, hint string) error {
	return &DetailError{
		Kind:    ErrValidation,
		Message: message,
		Path:    path,
		Field:   field,
		Hint:    hint,
	}
}

// NewNotFoundError reports a missing document, section or config file.
func NewNotFoundError(message, path, hint string) error {
	return &DetailError{
		Kind:    ErrNotFound,
		Message: message,
		Path:    path,
		Hint:    hint,
	}
}

// NewConnectivityError reports apps that could not be resolved live.
func NewConnectivityError(message string, apps []string, hint string) error {
	return &DetailError{
		Kind:    ErrConnectivity,
		Message: message,
		Apps:    apps,
		Hint:    hint,
	}
}
