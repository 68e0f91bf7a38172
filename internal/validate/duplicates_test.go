package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Duplicates(t *testing.T) {
	t.Run("same id in both releases is one finding", func(t *testing.T) {
		r := run(t,
			app(t, map[string]any{"name": "RetroArch"}),
			app(t, map[string]any{"name": "RetroArch Plus"}),
		)
		require.Len(t, r.Errors(), 1)
		f := r.Errors()[0]
		assert.Equal(t, "RetroArch Plus", f.Entry)
		assert.Equal(t, 1, f.Index)
		assert.Equal(t, "id", f.Field)
		assert.Equal(t,
			`duplicate id "org.ppsspp.ppsspp" shared with "RetroArch" (app[0]) in the standard and dual-screen releases`,
			f.Message)
	})

	t.Run("mutually exclusive variants are allowed", func(t *testing.T) {
		r := run(t,
			app(t, map[string]any{"meta": map[string]any{"includeInDualScreen": false}}),
			app(t, map[string]any{"meta": map[string]any{"includeInStandard": false}}),
		)
		assert.True(t, r.Valid())
	})

	t.Run("collision in one variant only", func(t *testing.T) {
		r := run(t,
			app(t, nil),
			app(t, map[string]any{"meta": map[string]any{"includeInStandard": false}}),
		)
		require.Len(t, r.Errors(), 1)
		assert.Contains(t, r.Errors()[0].Message, "in the dual-screen release")
	})

	t.Run("excluded from export does not collide", func(t *testing.T) {
		r := run(t,
			app(t, nil),
			app(t, map[string]any{"meta": map[string]any{"excludeFromExport": true}}),
		)
		assert.True(t, r.Valid())
	})

	t.Run("three entries give every pair", func(t *testing.T) {
		r := run(t,
			app(t, map[string]any{"name": "A"}),
			app(t, map[string]any{"name": "B"}),
			app(t, map[string]any{"name": "C"}),
		)
		require.Len(t, r.Errors(), 3)
		assert.Contains(t, r.Errors()[0].Message, `"A" (app[0])`)
		assert.Equal(t, "B", r.Errors()[0].Entry)
		assert.Contains(t, r.Errors()[1].Message, `"A" (app[0])`)
		assert.Contains(t, r.Errors()[2].Message, `"B" (app[1])`)
		assert.Equal(t, "C", r.Errors()[2].Entry)
	})

	t.Run("empty ids do not collide", func(t *testing.T) {
		r := run(t,
			app(t, map[string]any{"id": "", "name": "A"}),
			app(t, map[string]any{"id": "", "name": "B"}),
		)
		require.Len(t, r.Errors(), 2)
		for _, f := range r.Errors() {
			assert.Equal(t, "id", f.Field)
			assert.Equal(t, "must not be empty", f.Message)
		}
	})
}
