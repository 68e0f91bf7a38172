package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "pass returns green", status: StatusPass, wantFG: ColorGreen},
		{name: "fail returns bold red", status: StatusFail, wantFG: ColorBoldRed, wantBold: true},
		{name: "skip returns faint", status: StatusSkip, wantDim: true},
		{name: "warn returns yellow", status: StatusWarn, wantFG: ColorYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("whatever")
	assert.False(t, style.GetBold())
	assert.False(t, style.GetFaint())
}

func TestSeverityStyle(t *testing.T) {
	assert.Equal(t, ColorBoldRed, SeverityStyle(SeverityError).GetForeground())
	assert.True(t, SeverityStyle(SeverityError).GetBold())
	assert.Equal(t, ColorYellow, SeverityStyle(SeverityWarning).GetForeground())
}

func TestSeverityMarker(t *testing.T) {
	assert.Contains(t, SeverityMarker(SeverityError), "x")
	assert.Contains(t, SeverityMarker(SeverityWarning), "~")
	assert.Equal(t, "-", SeverityMarker("info"))
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "✔")
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCross("failed"), "✘")
}

func TestFormatInclusion(t *testing.T) {
	assert.Equal(t, "✅", FormatInclusion(true))
	assert.Equal(t, "❌", FormatInclusion(false))
}
