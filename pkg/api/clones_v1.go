// pkg/api/clones_v1.go
package api

import (
	"clonexport/core/align"
	"clonexport/core/translate"
)

// CloneSetVersion is the only clone-set schema version this build reads.
const CloneSetVersion = 1

// CloneSetV1 is the stable on-disk schema for an assembled clone set.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type CloneSetV1 struct {
	Version            int                              `json:"version"`
	AssemblingFeatures []string                         `json:"assembling_features"`
	AlignerParameters  map[string]align.AlignmentConfig `json:"aligner_parameters,omitempty"`
	Clones             []CloneV1                        `json:"clones"`
}

// CloneV1 is one clonotype. Fraction may be omitted; it is then derived
// from counts when the set is loaded.
type CloneV1 struct {
	ID       int              `json:"id"`
	Count    int64            `json:"count"`
	Fraction float64          `json:"fraction,omitempty"`
	Features map[string]SeqV1 `json:"features,omitempty"`
	Targets  []TargetV1       `json:"targets"`
}

// SeqV1 is a nucleotide sequence with Sanger (Phred+33) qualities.
type SeqV1 struct {
	Seq  string `json:"seq"`
	Qual string `json:"qual,omitempty"`
}

// TargetV1 is one physical segment of a clone.
type TargetV1 struct {
	Features map[string]SeqV1           `json:"features,omitempty"`
	Frames   map[string]translate.Frame `json:"frames,omitempty"`
}
