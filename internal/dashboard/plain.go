package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/ui"
)

// PlainOption customizes RunPlain.
type PlainOption func(*plainLoop)

// WithClearScreen clears the terminal before each frame. Only useful when
// out is a terminal; pipes and log files get frames appended.
func WithClearScreen(clear bool) PlainOption {
	return func(p *plainLoop) { p.clear = clear }
}

type plainLoop struct {
	clear bool
}

// RunPlain draws a frame immediately and then once per tick until ctx is
// canceled, then prints the closing message. Canceling ctx is the normal
// way to stop and is not an error; only a failed write is.
func RunPlain(ctx context.Context, out io.Writer, src Source, theme ui.Theme, ticks TickSource, opts ...PlainOption) error {
	var p plainLoop
	for _, opt := range opts {
		opt(&p)
	}
	defer ticks.Stop()

	term := termenv.NewOutput(out)
	for {
		snap := src.Collect(ctx)
		if ctx.Err() != nil {
			break
		}

		if p.clear {
			term.ClearScreen()
		}
		if _, err := io.WriteString(out, Render(snap, theme).String()); err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Couldn't write dashboard frame",
				"Check that the output is still open")
		}

		select {
		case <-ctx.Done():
			return Close(out, theme)
		case <-ticks.Ticks():
		}
	}
	return Close(out, theme)
}

// Close prints the closing message.
func Close(out io.Writer, theme ui.Theme) error {
	_, err := fmt.Fprintf(out, "\n%s\n", theme.Nominal(ClosingMessage))
	return err
}
