// internal/clns/read.go
package clns

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	"clonexport/core/clone"
	"clonexport/core/feature"
	"clonexport/core/translate"
	"clonexport/pkg/api"
)

// ErrInvalid marks clone sets that decode but violate the schema.
var ErrInvalid = errors.New("invalid clone set")

// Read loads a clone set from path ("-" reads os.Stdin).
func Read(path string) (*clone.CloneSet, error) {
	return ReadFrom(path, os.Stdin)
}

// ReadFrom is Read with an explicit stdin.
func ReadFrom(path string, stdin io.Reader) (*clone.CloneSet, error) {
	rc, err := open(path, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	set, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Decode parses a CloneSetV1 document.
func Decode(r io.Reader) (*clone.CloneSet, error) {
	var doc api.CloneSetV1
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode clone set: %w", err)
	}
	return FromAPI(doc)
}

// FromAPI validates doc and builds the in-memory set. When no clone carries
// a fraction, fractions are derived from counts.
func FromAPI(doc api.CloneSetV1) (*clone.CloneSet, error) {
	if doc.Version != api.CloneSetVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalid, doc.Version)
	}
	assembling := make([]feature.GeneFeature, 0, len(doc.AssemblingFeatures))
	for _, name := range doc.AssemblingFeatures {
		f, err := feature.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: assembling features: %w", ErrInvalid, err)
		}
		assembling = append(assembling, f)
	}

	seen := make(map[int]struct{}, len(doc.Clones))
	clones := make([]*clone.Clone, 0, len(doc.Clones))
	haveFractions := false
	var total int64
	for i, cv := range doc.Clones {
		if _, dup := seen[cv.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate clone id %d", ErrInvalid, cv.ID)
		}
		seen[cv.ID] = struct{}{}
		c, err := cloneFromAPI(cv)
		if err != nil {
			return nil, fmt.Errorf("%w: clone #%d (id %d): %w", ErrInvalid, i, cv.ID, err)
		}
		if cv.Fraction != 0 {
			haveFractions = true
		}
		total += cv.Count
		clones = append(clones, c)
	}

	set := clone.NewCloneSet(clone.NewSetInfo(assembling, doc.AlignerParameters), clones)
	if !haveFractions && total > 0 {
		set = clone.Normalize(set)
	}
	return set, nil
}

func cloneFromAPI(cv api.CloneV1) (*clone.Clone, error) {
	if cv.Count < 0 {
		return nil, fmt.Errorf("negative count %d", cv.Count)
	}
	if cv.Fraction < 0 || cv.Fraction > 1 {
		return nil, fmt.Errorf("fraction %v outside [0,1]", cv.Fraction)
	}
	if len(cv.Targets) == 0 {
		return nil, errors.New("no targets")
	}
	feats, err := seqMap(cv.Features)
	if err != nil {
		return nil, err
	}
	targets := make([]clone.Target, 0, len(cv.Targets))
	for ti, tv := range cv.Targets {
		seqs, err := seqMap(tv.Features)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", ti, err)
		}
		frames := make(map[feature.GeneFeature]translate.Frame, len(tv.Frames))
		for name, fr := range tv.Frames {
			f, err := feature.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("target %d frames: %w", ti, err)
			}
			frames[f] = fr
		}
		targets = append(targets, clone.NewTarget(seqs, frames))
	}
	return clone.New(cv.ID, cv.Count, cv.Fraction, targets, feats), nil
}

func seqMap(in map[string]api.SeqV1) (map[feature.GeneFeature]*linear.QSeq, error) {
	out := make(map[feature.GeneFeature]*linear.QSeq, len(in))
	for name, sv := range in {
		f, err := feature.Parse(name)
		if err != nil {
			return nil, err
		}
		q, err := toQSeq(sv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out[f] = q
	}
	return out, nil
}

func toQSeq(sv api.SeqV1) (*linear.QSeq, error) {
	for i := 0; i < len(sv.Seq); i++ {
		if !alphabet.DNAredundant.IsValid(alphabet.Letter(sv.Seq[i])) {
			return nil, fmt.Errorf("invalid nucleotide %q at %d", sv.Seq[i], i)
		}
	}
	var phred []byte
	if sv.Qual != "" {
		if len(sv.Qual) != len(sv.Seq) {
			return nil, fmt.Errorf("quality length %d != sequence length %d", len(sv.Qual), len(sv.Seq))
		}
		phred = make([]byte, len(sv.Qual))
		for i := 0; i < len(sv.Qual); i++ {
			c := sv.Qual[i]
			if c < '!' || c > '~' {
				return nil, fmt.Errorf("invalid quality %q at %d", c, i)
			}
			phred[i] = c - '!'
		}
	}
	return clone.NSeq("", sv.Seq, phred), nil
}
