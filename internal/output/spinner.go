package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// Progress shows a spinner per item of a batch, titled with the item's
// position, e.g. "[3/10] Dolphin". Without a TTY items run inline with no
// spinner.
type Progress struct {
	total int
	n     int
	tty   bool
}

// NewProgress creates a progress for total items.
func NewProgress(total int) *Progress {
	return &Progress{total: total, tty: IsTTY()}
}

func (p *Progress) title(name string) string {
	return fmt.Sprintf("[%d/%d] %s", p.n, p.total, name)
}

// Run runs action for the next item. It returns ctx's error when the batch
// was cancelled, in which case the caller must not use the action's result.
func (p *Progress) Run(ctx context.Context, name string, action func()) error {
	p.n++
	if !p.tty {
		action()
		return ctx.Err()
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		action()
	}()

	err := spinner.New().
		Title(p.title(name)).
		Context(ctx).
		Action(func() {
			select {
			case <-finished:
			case <-ctx.Done():
			}
		}).
		Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return nil
}
