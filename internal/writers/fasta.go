// internal/writers/fasta.go
package writers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"clonexport/core/clone"
	"clonexport/core/feature"
	"clonexport/internal/export"
)

// DefaultFastaWidth is the line width used when Options.FastaWidth is unset.
const DefaultFastaWidth = 60

func init() { Register("fasta", newFASTA) }

// fastaSink writes one record per clone carrying feat:
//
//	>clone_<id> count=<n> fraction=<f>
//
// Clones without the feature are skipped with export.ErrSkip.
type fastaSink struct {
	bw   *bufio.Writer
	fw   *fasta.Writer
	feat feature.GeneFeature
}

func newFASTA(w io.Writer, opt Options) (export.Sink, error) {
	feat := opt.FastaFeature
	if feat == "" {
		feat = feature.CDR3
	}
	if !feature.Known(feat) {
		return nil, fmt.Errorf("fasta: %w %q", feature.ErrUnknownFeature, feat)
	}
	width := opt.FastaWidth
	if width <= 0 {
		width = DefaultFastaWidth
	}
	bw := bufio.NewWriterSize(w, 64<<10)
	return &fastaSink{bw: bw, fw: fasta.NewWriter(bw, width), feat: feat}, nil
}

func (s *fastaSink) EnsureHeader() error { return nil }

func (s *fastaSink) Put(c *clone.Clone) error {
	q, ok := c.Feature(s.feat)
	if !ok || len(q.Seq) == 0 {
		return export.ErrSkip
	}
	rec := linear.NewSeq("clone_"+strconv.Itoa(c.ID()), alphabet.BytesToLetters(clone.Bases(q)), alphabet.DNAredundant)
	rec.Desc = fmt.Sprintf("count=%d fraction=%s", c.Count(), strconv.FormatFloat(c.Fraction(), 'g', -1, 64))
	_, err := s.fw.Write(rec)
	return err
}

func (s *fastaSink) Close() error {
	if err := s.bw.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
