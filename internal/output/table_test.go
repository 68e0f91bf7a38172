package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("VARIANT", "ENTRIES").
		Row("standard", "12").
		Row("dual-screen", "10")

	out := tbl.String()

	assert.Equal(t, 2, tbl.Len())
	assert.Contains(t, out, "VARIANT")
	assert.Contains(t, out, "dual-screen")
	assert.Contains(t, out, "12")
	assert.NotContains(t, out, "│", "no column borders")
}

func TestTable_HeaderRuleOnly(t *testing.T) {
	out := NewTable("A", "B").Row("x", "y").String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3, "header, rule, row")
	assert.Contains(t, lines[1], "─")
}

func TestTable_AlignRight(t *testing.T) {
	out := NewTable("NAME", "COUNT").AlignRight(1).
		Row("standard", "5").
		Row("dual-screen", "120").
		String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := strings.TrimRight(lines[len(lines)-1], " ")
	five := strings.TrimRight(lines[len(lines)-2], " ")
	assert.True(t, strings.HasSuffix(five, "5"))
	assert.Equal(t, len([]rune(last)), len([]rune(five)), "right-aligned cells end in the same column")
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable("A", "B")
	assert.Equal(t, 0, tbl.Len())
	assert.Contains(t, tbl.String(), "A")
}
