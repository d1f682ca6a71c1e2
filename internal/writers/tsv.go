// internal/writers/tsv.go
package writers

import (
	"bufio"
	"io"
	"strings"

	"clonexport/core/clone"
	"clonexport/internal/export"
	"clonexport/internal/fields"
)

func init() { Register("tsv", newTSV) }

type tsvSink struct {
	bw      *bufio.Writer
	fs      []fields.Field
	header  bool
	started bool
}

func newTSV(w io.Writer, opt Options) (export.Sink, error) {
	return &tsvSink{bw: bufio.NewWriterSize(w, 64<<10), fs: opt.Fields, header: opt.Header}, nil
}

func (s *tsvSink) EnsureHeader() error {
	if s.started {
		return nil
	}
	s.started = true
	if !s.header {
		return nil
	}
	return s.line(fields.Headers(s.fs))
}

func (s *tsvSink) Put(c *clone.Clone) error {
	return s.line(fields.Values(s.fs, c))
}

func (s *tsvSink) line(cols []string) error {
	if _, err := s.bw.WriteString(strings.Join(cols, "\t")); err != nil {
		return err
	}
	return s.bw.WriteByte('\n')
}

func (s *tsvSink) Close() error {
	if err := s.bw.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
