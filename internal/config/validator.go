package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var schemaFS embed.FS

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema/config.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	compiled := ctx.CompileBytes(schemaData)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: compiled.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate checks semantic constraints on a loaded configuration.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.RedirectURL != "" {
		u, err := url.Parse(cfg.RedirectURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "redirectURL",
				Message: "must be an absolute http or https URL",
			})
		}
	}

	if cfg.Test.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "test.timeout",
			Message: "must not be negative",
		})
	}

	for i, section := range cfg.Readme.Sections {
		if strings.TrimSpace(section) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("readme.sections[%d]", i),
				Message: "must not be empty",
			})
		}
	}

	if cfg.Export.Standard != "" && cfg.Export.Standard == cfg.Export.DualScreen {
		errs = append(errs, ValidationError{
			Field:   "export.dualScreen",
			Message: "must differ from export.standard",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckData validates raw YAML config against the schema. Unknown keys and
// wrongly typed values are reported per field.
func (v *Validator) CheckData(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	if raw == nil {
		return nil
	}

	value := v.ctx.Encode(raw)
	if value.Err() != nil {
		return ValidationErrors{{Field: "(file)", Message: value.Err().Error()}}
	}

	err := v.schema.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	seen := make(map[string]bool)
	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(file)"
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}

// ValidateFile checks the file against the schema, then loads it and
// validates the result.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := v.CheckData(data); err != nil {
		return err
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return v.Validate(cfg)
}
