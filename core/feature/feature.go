// core/feature/feature.go
package feature

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// GeneFeature names a region of a rearranged receptor gene (e.g. CDR3, VRegion).
type GeneFeature string

const (
	FR1       GeneFeature = "FR1"
	CDR1      GeneFeature = "CDR1"
	FR2       GeneFeature = "FR2"
	CDR2      GeneFeature = "CDR2"
	FR3       GeneFeature = "FR3"
	CDR3      GeneFeature = "CDR3"
	FR4       GeneFeature = "FR4"
	VCDR3Part GeneFeature = "VCDR3Part"
	JCDR3Part GeneFeature = "JCDR3Part"
	VDJRegion GeneFeature = "VDJRegion"

	V5UTR                  GeneFeature = "V5UTR"
	VTranscript            GeneFeature = "VTranscript"
	VTranscriptWithout5UTR GeneFeature = "VTranscriptWithout5UTR"
	VRegion                GeneFeature = "VRegion"
	DRegion                GeneFeature = "DRegion"
	JRegion                GeneFeature = "JRegion"
	CRegion                GeneFeature = "CRegion"
	CExon1                 GeneFeature = "CExon1"
)

// ErrUnknownFeature is returned by Parse for names outside the registry.
var ErrUnknownFeature = errors.New("unknown gene feature")

// Registry resolves coding sub-features. ok=false means the region has no
// defined reading frame (UTRs, D segments).
type Registry interface {
	CodingFeatureOf(f GeneFeature) (coding GeneFeature, ok bool)
}

// codingTable maps every known feature to its coding sub-feature ("" = none).
var codingTable = map[GeneFeature]GeneFeature{
	FR1:       FR1,
	CDR1:      CDR1,
	FR2:       FR2,
	CDR2:      CDR2,
	FR3:       FR3,
	CDR3:      CDR3,
	FR4:       FR4,
	VCDR3Part: VCDR3Part,
	JCDR3Part: JCDR3Part,
	VDJRegion: VDJRegion,

	V5UTR:                  "",
	VTranscript:            VTranscriptWithout5UTR,
	VTranscriptWithout5UTR: VTranscriptWithout5UTR,
	VRegion:                VRegion,
	DRegion:                "",
	JRegion:                JRegion,
	CRegion:                CExon1,
	CExon1:                 CExon1,
}

type staticRegistry map[GeneFeature]GeneFeature

func (r staticRegistry) CodingFeatureOf(f GeneFeature) (GeneFeature, bool) {
	c, ok := r[f]
	if !ok || c == "" {
		return "", false
	}
	return c, true
}

// Default is the built-in registry.
var Default Registry = staticRegistry(codingTable)

// CodingFeatureOf looks f up in the Default registry.
func CodingFeatureOf(f GeneFeature) (GeneFeature, bool) { return Default.CodingFeatureOf(f) }

// Known reports whether f is part of the built-in registry.
func Known(f GeneFeature) bool {
	_, ok := codingTable[f]
	return ok
}

// Parse resolves a feature name case-insensitively.
func Parse(name string) (GeneFeature, error) {
	n := strings.TrimSpace(name)
	for f := range codingTable {
		if strings.EqualFold(string(f), n) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFeature, name)
}

// Names lists all known features, sorted.
func Names() []string {
	out := make([]string, 0, len(codingTable))
	for f := range codingTable {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func (f GeneFeature) String() string { return string(f) }
