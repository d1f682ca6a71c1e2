// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"clonexport/core/feature"
	"clonexport/internal/export"
	"clonexport/internal/fields"
)

// ErrUnknownFormat is returned by New for formats with no registered sink.
var ErrUnknownFormat = errors.New("unknown output format")

// Options configure a sink. Fields drive tsv and jsonl; FastaFeature drives fasta.
type Options struct {
	Fields       []fields.Field
	Header       bool
	FastaFeature feature.GeneFeature
	FastaWidth   int
}

// Factory builds a sink over w.
type Factory func(w io.Writer, opt Options) (export.Sink, error)

// Sinks is the format → constructor registry. Formats register in init().
var Sinks = map[string]Factory{}

// Register adds or replaces a format (last wins).
func Register(format string, fn Factory) { Sinks[format] = fn }

// Lookup returns the factory registered for format (case-insensitive).
func Lookup(format string) (Factory, error) {
	fn, ok := Sinks[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w %q (have: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return fn, nil
}

// New dispatches to the registered factory for format.
func New(format string, w io.Writer, opt Options) (export.Sink, error) {
	fn, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	return fn(w, opt)
}

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(Sinks))
	for k := range Sinks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
