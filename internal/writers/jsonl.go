// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"clonexport/core/clone"
	"clonexport/internal/export"
	"clonexport/internal/fields"
	"clonexport/internal/jsonlutil"
	"clonexport/pkg/api"
)

func init() { Register("jsonl", newJSONL) }

// jsonlSink streams one api.CloneRowV1 per clone through a jsonlutil
// encoder goroutine. JSONL has no header line.
type jsonlSink struct {
	s  *jsonlutil.Stream[api.CloneRowV1]
	fs []fields.Field
}

func newJSONL(w io.Writer, opt Options) (export.Sink, error) {
	s := jsonlutil.Start[api.CloneRowV1](w, 64,
		func(enc *json.Encoder, row api.CloneRowV1) error { return enc.Encode(row) },
		IsBrokenPipe,
	)
	return &jsonlSink{s: s, fs: opt.Fields}, nil
}

// Row converts c into its JSONL wire form.
func Row(fs []fields.Field, c *clone.Clone) api.CloneRowV1 {
	vals := fields.Values(fs, c)
	row := api.CloneRowV1{CloneID: c.ID(), Fields: make([]api.FieldV1, len(fs))}
	for i, f := range fs {
		row.Fields[i] = api.FieldV1{Header: f.Header(), Value: vals[i]}
	}
	return row
}

func (s *jsonlSink) EnsureHeader() error      { return nil }
func (s *jsonlSink) Put(c *clone.Clone) error { return s.s.Send(Row(s.fs, c)) }
func (s *jsonlSink) Close() error             { return s.s.Close() }
