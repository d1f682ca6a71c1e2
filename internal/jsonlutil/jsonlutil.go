// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across streams to avoid per-stream mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Stream encodes values of type T as JSON lines from its own goroutine.
// Send and Close must be called from a single goroutine.
type Stream[T any] struct {
	in       chan T
	done     chan error
	isBroken func(error) bool
	err      error
	closed   bool
}

// Start spins up the encoder goroutine.
//   - encode: fn to encode one value (convert to wire type & enc.Encode)
//   - isBroken: recognizer for broken/closed pipe errors; Close suppresses them
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) *Stream[T] {
	if bufSize <= 0 {
		bufSize = 64
	}
	s := &Stream[T]{in: make(chan T, bufSize), done: make(chan error, 1), isBroken: isBroken}

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		for v := range s.in {
			if err := encode(enc, v); err != nil {
				s.done <- err
				return
			}
		}
		s.done <- bw.Flush()
	}()

	return s
}

// Send queues v. After the encoder failed, Send returns its error.
func (s *Stream[T]) Send(v T) error {
	if s.closed {
		if s.err != nil {
			return s.err
		}
		return io.ErrClosedPipe
	}
	select {
	case s.in <- v:
		return nil
	case err := <-s.done:
		// the encoder only exits early on error
		s.err, s.closed = err, true
		close(s.in)
		return err
	}
}

// Close drains the queue, flushes, and returns the first encoder error.
// Broken pipes are not errors.
func (s *Stream[T]) Close() error {
	if !s.closed {
		s.closed = true
		close(s.in)
		s.err = <-s.done
	}
	if s.err != nil && s.isBroken != nil && s.isBroken(s.err) {
		return nil
	}
	return s.err
}
