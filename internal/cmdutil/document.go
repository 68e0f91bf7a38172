package cmdutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/validate"
)

// LoadDocument reads the applications document at path. A missing file
// exits with the not-found code and a malformed one with the validation code.
func LoadDocument(path string) (*catalog.Document, error) {
	doc, err := catalog.ReadFile(path)
	if err == nil {
		output.Debug("loaded document", "path", path, "apps", len(doc.Apps))
		return doc, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewExitError(oerrors.NewNotFoundError(
			"applications document does not exist", path,
			"pass --source or set source in .oep.yaml"), oerrors.ExitNotFound)
	}
	return nil, oerrors.NewExitError(
		oerrors.NewValidationError(err.Error(), path, "", ""),
		oerrors.ExitValidationError)
}

// RequireValid validates doc and logs its errors. It returns an
// ExitError with the validation code when errors were found.
func RequireValid(doc *catalog.Document, path string) (*validate.Report, error) {
	report, err := validate.Validate(doc)
	if err != nil {
		return nil, err
	}
	for _, f := range report.Errors() {
		output.Error(f.Message, "app", f.Entry, "field", f.Field)
	}
	if err := report.Err(path); err != nil {
		return report, oerrors.NewExitError(err, oerrors.ExitValidationError)
	}
	return report, nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
