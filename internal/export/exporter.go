// internal/export/exporter.go
package export

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"clonexport/core/clone"
)

// Stage is the progress label reported while exporting.
const Stage = "Exporting clones"

// ErrSkip is returned by Sink.Put for a clone the sink chose not to write.
// The clone still counts as visited for progress.
var ErrSkip = errors.New("skip clone")

// Sink receives the header once and then one clone per record.
// Close flushes and releases the underlying resource.
type Sink interface {
	EnsureHeader() error
	Put(c *clone.Clone) error
	Close() error
}

// Exporter writes set[0:bound] to a sink. The counters are written only by
// Run and may be polled from other goroutines.
type Exporter struct {
	set     *clone.CloneSet
	sink    Sink
	bound   int
	total   int64
	current atomic.Int64 // visited
	written atomic.Int64
	done    atomic.Bool
	doneCh  chan struct{}
	once    sync.Once
}

func NewExporter(set *clone.CloneSet, sink Sink, bound int) *Exporter {
	return &Exporter{set: set, sink: sink, bound: bound, total: int64(set.Len()), doneCh: make(chan struct{})}
}

func (e *Exporter) Stage() string  { return Stage }
func (e *Exporter) Current() int64 { return e.current.Load() }
func (e *Exporter) Total() int64   { return e.total }

// Written counts clones the sink accepted; skipped clones are excluded.
func (e *Exporter) Written() int64 { return e.written.Load() }

// Done is closed when Run returns.
func (e *Exporter) Done() <-chan struct{} { return e.doneCh }

// Progress is current/total; an empty set reports 0 and is already finished.
func (e *Exporter) Progress() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.current.Load()) / float64(e.total)
}

// IsFinished is true once every clone was written or Run returned.
func (e *Exporter) IsFinished() bool {
	return e.current.Load() == e.total || e.done.Load()
}

// Run writes the header, then clones in stored order until the bound or the
// end of the set. ctx is checked between records. Run does not close the sink.
func (e *Exporter) Run(ctx context.Context) error {
	defer e.once.Do(func() {
		e.done.Store(true)
		close(e.doneCh)
	})
	if err := e.sink.EnsureHeader(); err != nil {
		return err
	}
	for i := 0; i < e.set.Len(); i++ {
		if int(e.current.Load()) == e.bound {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		switch err := e.sink.Put(e.set.At(i)); {
		case err == nil:
			e.written.Add(1)
		case errors.Is(err, ErrSkip):
		default:
			return err
		}
		e.current.Add(1)
	}
	return nil
}

// RunAndClose is Run followed by closing the sink on every exit path. A close
// error is joined with any write error.
func (e *Exporter) RunAndClose(ctx context.Context) (err error) {
	defer func() {
		if cerr := e.sink.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return e.Run(ctx)
}

// Export runs one pass over set[0:bound] and always closes sink. written
// excludes clones the sink skipped.
func Export(ctx context.Context, set *clone.CloneSet, sink Sink, bound int) (written int64, err error) {
	e := NewExporter(set, sink, bound)
	err = e.RunAndClose(ctx)
	return e.Written(), err
}
