// core/translate/translate.go
package translate

import "bytes"

// Stop is the amino-acid letter emitted for TAA/TAG/TGA.
const Stop = '*'

// Unknown is emitted for codons containing anything other than ACGT.
const Unknown = 'X'

// Frame places the codon grid on a nucleotide sequence.
// Offset counts bases skipped before the first full codon; with FromRight the
// grid is anchored Offset bases before the right end instead.
type Frame struct {
	Offset    int  `json:"offset" yaml:"offset"`
	FromRight bool `json:"from_right,omitempty" yaml:"from_right,omitempty"`
}

// start returns the index of the first base of the first full codon.
func (f Frame) start(n int) int {
	if f.FromRight {
		s := (n - f.Offset) % 3
		if s < 0 {
			s += 3
		}
		return s
	}
	s := f.Offset % 3
	if s < 0 {
		s += 3
	}
	return s
}

/* ------------------------- standard genetic code ------------------------- */

// nuc2 maps a base to its 2-bit index in TCAG order; 0xff marks non-ACGT.
var nuc2 [256]byte

// code is the standard table indexed 16*b1 + 4*b2 + b3 with bases in TCAG order.
const code = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

func init() {
	for i := range nuc2 {
		nuc2[i] = 0xff
	}
	for i, b := range []byte("TCAG") {
		nuc2[b] = byte(i)
		nuc2[b+'a'-'A'] = byte(i)
	}
	nuc2['U'], nuc2['u'] = 0, 0
}

// Codon translates a single triplet.
func Codon(a, b, c byte) byte {
	x, y, z := nuc2[a], nuc2[b], nuc2[c]
	if x == 0xff || y == 0xff || z == 0xff {
		return Unknown
	}
	return code[int(x)*16+int(y)*4+int(z)]
}

// AminoAcids is a translated sequence.
type AminoAcids []byte

func (aa AminoAcids) String() string { return string(aa) }

// ContainsStops reports whether any codon translated to a stop.
func (aa AminoAcids) ContainsStops() bool { return bytes.IndexByte(aa, Stop) >= 0 }

// Translate converts nt to amino acids using frame f. Partial codons at
// either end are dropped.
func Translate(nt []byte, f Frame) AminoAcids {
	s := f.start(len(nt))
	if len(nt)-s < 3 {
		return AminoAcids{}
	}
	out := make(AminoAcids, 0, (len(nt)-s)/3)
	for i := s; i+3 <= len(nt); i += 3 {
		out = append(out, Codon(nt[i], nt[i+1], nt[i+2]))
	}
	return out
}
