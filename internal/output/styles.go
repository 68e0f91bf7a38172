package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for every ANSI 256 color used by the CLI.
var (
	// ColorCyan is used for identifiable nouns: entry names, ids, file paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for passing checks and included variants.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and skipped checks.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for errors and failed checks (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (entry names, ids, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (indices, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Check status constants used by the live resolver output.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
	StatusWarn = "WARN"
)

// Severity labels used by validation findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// StatusStyle returns the style for a check status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusPass:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusFail:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	case StatusSkip:
		return lipgloss.NewStyle().Faint(true)
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// SeverityStyle returns the style for a finding severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case SeverityError:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	case SeverityWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// SeverityMarker returns the one-character marker printed before a finding.
func SeverityMarker(severity string) string {
	switch severity {
	case SeverityError:
		return SeverityStyle(severity).Render("x")
	case SeverityWarning:
		return SeverityStyle(severity).Render("~")
	default:
		return "-"
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(ColorBoldRed).Render("✘")
	return cross + " " + msg
}

// FormatInclusion renders the inclusion marker used in summary tables.
func FormatInclusion(included bool) string {
	if included {
		return "✅"
	}
	return "❌"
}
