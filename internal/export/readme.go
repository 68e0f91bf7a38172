package export

import (
	"fmt"
	"os"
	"strings"

	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
)

// Stitch joins markdown sections with one blank line between them and a
// single trailing newline. Each section is trimmed first.
func Stitch(sections []string) string {
	trimmed := make([]string, len(sections))
	for i, s := range sections {
		trimmed[i] = strings.TrimSpace(s)
	}
	return strings.Join(trimmed, "\n\n") + "\n"
}

// StitchFiles reads the markdown files in order and stitches them.
func StitchFiles(paths []string) (string, error) {
	sections := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				return "", oerrors.NewNotFoundError(
					fmt.Sprintf("section file %s does not exist", p), p,
					"check readme.sections in .oep.yaml")
			}
			return "", err
		}
		sections = append(sections, string(data))
	}
	return Stitch(sections), nil
}
