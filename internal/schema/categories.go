package schema

import "slices"

var categories = []string{
	"Emulator",
	"Frontend",
	"Utilities",
	"PC Emulation",
	"Streaming",
}

// Categories returns the known category labels. Unknown labels are allowed;
// the table generator renders a section for any label it sees.
func Categories() []string {
	return slices.Clone(categories)
}

// IsKnownCategory reports whether c is in the known vocabulary.
func IsKnownCategory(c string) bool {
	return slices.Contains(categories, c)
}
