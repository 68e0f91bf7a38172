// Package validate checks an applications document and collects every
// finding in one pass.
package validate

import (
	"fmt"

	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
)

// Severity of a finding. Only errors fail validation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem found in the document.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`

	// Entry identifies the offending app by name, id or position.
	Entry string `json:"entry" yaml:"entry"`

	// Index is the position of the entry in the apps list.
	Index int `json:"index" yaml:"index"`

	// Field is the field path the finding refers to, if any.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	if f.Field != "" {
		return fmt.Sprintf("%s: %s: %s: %s", f.Severity, f.Entry, f.Field, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Entry, f.Message)
}

// Report is the result of validating a document.
type Report struct {
	Findings []Finding `json:"findings" yaml:"findings"`

	// Checked is the number of entries examined.
	Checked int `json:"checked" yaml:"checked"`
}

// Valid reports whether the document has no error findings.
func (r *Report) Valid() bool {
	return len(r.Errors()) == 0
}

// Errors returns the error findings.
func (r *Report) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning findings.
func (r *Report) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Err returns a validation error summarizing the report, or nil when valid.
func (r *Report) Err(location string) error {
	n := len(r.Errors())
	if n == 0 {
		return nil
	}
	return oerrors.NewValidationError(
		fmt.Sprintf("%d error(s) in %d app(s) checked", n, r.Checked),
		location, "",
		"fix the errors above and run validate again",
	)
}

func (r *Report) add(s Severity, entry string, index int, field, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: s,
		Entry:    entry,
		Index:    index,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}
