// core/clone/nseq.go
package clone

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// NSeq builds a nucleotide sequence with Phred qualities. A nil or short
// phred slice leaves the remaining qualities at zero.
func NSeq(id, bases string, phred []byte) *linear.QSeq {
	ql := make([]alphabet.QLetter, len(bases))
	for i := 0; i < len(bases); i++ {
		ql[i].L = alphabet.Letter(bases[i])
		if i < len(phred) {
			ql[i].Q = alphabet.Qphred(phred[i])
		}
	}
	return linear.NewQSeq(id, ql, alphabet.DNAredundant, alphabet.Sanger)
}

// Bases returns the nucleotide letters of q.
func Bases(q *linear.QSeq) []byte {
	if q == nil {
		return nil
	}
	out := make([]byte, len(q.Seq))
	for i, l := range q.Seq {
		out[i] = byte(l.L)
	}
	return out
}

// QualString renders the qualities of q as Sanger (Phred+33) text.
func QualString(q *linear.QSeq) string {
	if q == nil {
		return ""
	}
	out := make([]byte, len(q.Seq))
	for i, l := range q.Seq {
		c := int(l.Q) + 33
		if c > '~' {
			c = '~'
		}
		out[i] = byte(c)
	}
	return string(out)
}
