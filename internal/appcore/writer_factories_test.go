package appcore

import (
	"bytes"
	"errors"
	"testing"

	"clonexport/core/feature"
	"clonexport/internal/config"
	"clonexport/internal/fields"
	"clonexport/internal/writers"
)

func TestNewSinkFactory(t *testing.T) {
	cfg := config.Default()
	f, err := NewSinkFactory(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if f.Format != "tsv" || !f.Header || f.FastaFeature != feature.CDR3 || len(f.Fields) != 7 {
		t.Fatalf("factory = %+v", f)
	}
	var buf bytes.Buffer
	s, err := f.Open(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.EnsureHeader(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected header line")
	}
}

func TestNewSinkFactoryErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"format", func(c *config.Config) { c.Format = "xml" }, writers.ErrUnknownFormat},
		{"field", func(c *config.Config) { c.Fields = "-bogus" }, fields.ErrUnknownField},
		{"feature", func(c *config.Config) { c.FastaFeature = "CDR9" }, feature.ErrUnknownFeature},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if _, err := NewSinkFactory(cfg); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
