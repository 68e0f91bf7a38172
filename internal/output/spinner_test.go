package output

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests run without a TTY, so actions execute inline.
func TestProgress_RunsEachItem(t *testing.T) {
	p := NewProgress(2)
	var ran []string
	for _, name := range []string{"Dolphin", "PPSSPP"} {
		require.NoError(t, p.Run(context.Background(), name, func() {
			ran = append(ran, name)
		}))
	}

	assert.Equal(t, []string{"Dolphin", "PPSSPP"}, ran)
	assert.Equal(t, "[2/2] PPSSPP", p.title("PPSSPP"))
}

func TestProgress_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewProgress(1).Run(ctx, "Dolphin", func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
