// internal/appcore/writer_factories.go
package appcore

import (
	"io"

	"clonexport/core/feature"
	"clonexport/internal/config"
	"clonexport/internal/export"
	"clonexport/internal/fields"
	"clonexport/internal/writers"
)

// SinkFactory captures everything needed to open the output sink, so the
// column spec and format are checked before the input is loaded.
type SinkFactory struct {
	Format       string
	Fields       []fields.Field
	Header       bool
	FastaFeature feature.GeneFeature
}

// NewSinkFactory parses the column spec and feature named by cfg.
func NewSinkFactory(cfg config.Config) (SinkFactory, error) {
	fs, err := fields.ParseSpec(cfg.Fields)
	if err != nil {
		return SinkFactory{}, err
	}
	ff, err := feature.Parse(cfg.FastaFeature)
	if err != nil {
		return SinkFactory{}, err
	}
	if _, err := writers.Lookup(cfg.Format); err != nil {
		return SinkFactory{}, err
	}
	return SinkFactory{Format: cfg.Format, Fields: fs, Header: !cfg.NoHeader, FastaFeature: ff}, nil
}

// Open builds the sink over out.
func (f SinkFactory) Open(out io.Writer) (export.Sink, error) {
	return writers.New(f.Format, out, writers.Options{
		Fields:       f.Fields,
		Header:       f.Header,
		FastaFeature: f.FastaFeature,
	})
}
