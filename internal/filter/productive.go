// internal/filter/productive.go
package filter

import (
	"clonexport/core/clone"
	"clonexport/core/feature"
	"clonexport/core/translate"
)

// Productive rejects clones that cannot encode a functional receptor.
// The struct is comparable, so two values with the same switches are
// equal and usable as map keys.
type Productive struct {
	// FilterOutOfFrames rejects clones without a CDR3 or with a CDR3 whose
	// length is not a multiple of three.
	FilterOutOfFrames bool
	// FilterStopCodons rejects clones whose coding features translate to a
	// stop on any target, or whose frame is unknown for a covered feature.
	FilterStopCodons bool
}

func (p Productive) Accept(c *clone.Clone) bool {
	if p.FilterOutOfFrames {
		cdr3, ok := c.Feature(feature.CDR3)
		if !ok || cdr3.Len()%3 != 0 {
			return false
		}
	}

	if p.FilterStopCodons {
		for _, assembling := range c.Info().AssemblingFeatures() {
			coding, ok := feature.CodingFeatureOf(assembling)
			if !ok {
				continue
			}
			for i := 0; i < c.NumberOfTargets(); i++ {
				t := c.Target(i)
				seq, ok := t.Feature(coding)
				if !ok {
					continue
				}
				fr, ok := t.Frame(coding)
				if !ok {
					return false
				}
				if translate.Translate(clone.Bases(seq), fr).ContainsStops() {
					return false
				}
			}
		}
	}

	return true
}
