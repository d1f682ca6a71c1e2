// core/clone/clone.go
package clone

import (
	"maps"
	"slices"

	"github.com/biogo/biogo/seq/linear"

	"clonexport/core/align"
	"clonexport/core/feature"
	"clonexport/core/translate"
)

// Target is one physical sequence segment of a clone: the feature sequences
// it covers and the reading frame known for each of them.
type Target struct {
	seqs   map[feature.GeneFeature]*linear.QSeq
	frames map[feature.GeneFeature]translate.Frame
}

// NewTarget copies both maps; either may be nil.
func NewTarget(seqs map[feature.GeneFeature]*linear.QSeq, frames map[feature.GeneFeature]translate.Frame) Target {
	return Target{seqs: maps.Clone(seqs), frames: maps.Clone(frames)}
}

// Feature returns the target's sequence for f, if the target covers it.
func (t Target) Feature(f feature.GeneFeature) (*linear.QSeq, bool) {
	s, ok := t.seqs[f]
	return s, ok && s != nil
}

// Frame returns the translation frame for f on this target.
func (t Target) Frame(f feature.GeneFeature) (translate.Frame, bool) {
	fr, ok := t.frames[f]
	return fr, ok
}

// SetInfo is the collection-level header shared by all clones of a set:
// the features used for assembly and the aligner configuration per gene.
type SetInfo struct {
	assembling []feature.GeneFeature
	aligners   align.GeneConfigs
}

func NewSetInfo(assembling []feature.GeneFeature, aligners align.GeneConfigs) *SetInfo {
	return &SetInfo{assembling: slices.Clone(assembling), aligners: aligners.Clone()}
}

// AssemblingFeatures returns a copy of the assembling features.
func (s *SetInfo) AssemblingFeatures() []feature.GeneFeature {
	if s == nil {
		return nil
	}
	return slices.Clone(s.assembling)
}

// AlignerParameters returns the config for geneType ("V", "D", "J", "C").
func (s *SetInfo) AlignerParameters(geneType string) (align.AlignmentConfig, bool) {
	if s == nil {
		return align.AlignmentConfig{}, false
	}
	c, ok := s.aligners[geneType]
	return c, ok
}

// GeneTypes lists gene types with aligner parameters, sorted.
func (s *SetInfo) GeneTypes() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.aligners))
}

// Clone is one clonotype. Clones are immutable once placed in a CloneSet.
type Clone struct {
	id       int
	count    int64
	fraction float64
	targets  []Target
	features map[feature.GeneFeature]*linear.QSeq
	info     *SetInfo
}

// New builds a detached clone; NewCloneSet attaches it to a set header.
func New(id int, count int64, fraction float64, targets []Target, features map[feature.GeneFeature]*linear.QSeq) *Clone {
	return &Clone{
		id:       id,
		count:    count,
		fraction: fraction,
		targets:  slices.Clone(targets),
		features: maps.Clone(features),
	}
}

func (c *Clone) ID() int              { return c.id }
func (c *Clone) Count() int64         { return c.count }
func (c *Clone) Fraction() float64    { return c.fraction }
func (c *Clone) NumberOfTargets() int { return len(c.targets) }
func (c *Clone) Target(i int) Target  { return c.targets[i] }

// Info is the header of the owning set (nil for detached clones).
func (c *Clone) Info() *SetInfo { return c.info }

// Feature returns the clone-level sequence for f, falling back to the first
// target that covers it.
func (c *Clone) Feature(f feature.GeneFeature) (*linear.QSeq, bool) {
	if s, ok := c.features[f]; ok && s != nil {
		return s, true
	}
	for _, t := range c.targets {
		if s, ok := t.Feature(f); ok {
			return s, true
		}
	}
	return nil, false
}
