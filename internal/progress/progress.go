// internal/progress/progress.go
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Reporter is a long-running task that can be polled from another goroutine.
// Done is closed when the task ends, so Run can stop without waiting for
// the next tick.
type Reporter interface {
	Stage() string
	Progress() float64
	IsFinished() bool
	Done() <-chan struct{}
}

type Options struct {
	Interval time.Duration
	// TTY redraws a single line with \r instead of printing one line per tick.
	TTY bool
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Line renders the current state, e.g. "Exporting clones: 42.0%".
func Line(r Reporter) string {
	return fmt.Sprintf("%s: %.1f%%", r.Stage(), 100*r.Progress())
}

// Run polls r every opt.Interval until r finishes (or closes Done) or ctx
// ends, then prints a final line. Write errors are ignored; progress is best effort.
func Run(ctx context.Context, r Reporter, w io.Writer, opt Options) error {
	interval := opt.Interval
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	last := ""
	emit := func(final bool) {
		line := Line(r)
		switch {
		case opt.TTY && final:
			_, _ = fmt.Fprintf(w, "\r%s\n", line)
		case opt.TTY:
			_, _ = fmt.Fprintf(w, "\r%s", line)
		case line != last || final:
			_, _ = fmt.Fprintln(w, line)
		}
		last = line
	}

	for {
		if r.IsFinished() {
			emit(true)
			return nil
		}
		select {
		case <-ctx.Done():
			emit(true)
			return nil
		case <-r.Done():
			emit(true)
			return nil
		case <-t.C:
			emit(false)
		}
	}
}
