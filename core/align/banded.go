// core/align/banded.go
package align

import "slices"

// Scoring is a linear-gap substitution scoring. Matrix is row-major over
// Alphabet (len(Alphabet)^2 entries).
type Scoring struct {
	Alphabet   string `json:"alphabet" yaml:"alphabet"`
	Matrix     []int  `json:"subsMatrix" yaml:"subsMatrix"`
	GapPenalty int    `json:"gapPenalty" yaml:"gapPenalty"`
}

// NewLinearScoring builds an ACGT scoring with a uniform match/mismatch score.
func NewLinearScoring(match, mismatch, gap int) Scoring {
	const abc = "ACGT"
	m := make([]int, len(abc)*len(abc))
	for i := range abc {
		for j := range abc {
			if i == j {
				m[i*len(abc)+j] = match
			} else {
				m[i*len(abc)+j] = mismatch
			}
		}
	}
	return Scoring{Alphabet: abc, Matrix: m, GapPenalty: gap}
}

func (s Scoring) clone() Scoring {
	s.Matrix = slices.Clone(s.Matrix)
	return s
}

func (s Scoring) equal(o Scoring) bool {
	return s.Alphabet == o.Alphabet && s.GapPenalty == o.GapPenalty && slices.Equal(s.Matrix, o.Matrix)
}

// BandedParameters configures a banded aligner. The aligner itself lives
// upstream; here the value is only stored, compared and copied.
type BandedParameters struct {
	Scoring     Scoring `json:"scoring" yaml:"scoring"`
	Width       int     `json:"width" yaml:"width"`
	StopPenalty int     `json:"stopPenalty" yaml:"stopPenalty"`
}

// Clone returns a deep copy.
func (p BandedParameters) Clone() BandedParameters {
	p.Scoring = p.Scoring.clone()
	return p
}

// Equal compares component-wise, including the substitution matrix.
func (p BandedParameters) Equal(o BandedParameters) bool {
	return p.Width == o.Width && p.StopPenalty == o.StopPenalty && p.Scoring.equal(o.Scoring)
}
