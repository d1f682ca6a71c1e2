// internal/fields/builtin.go
package fields

import (
	"strconv"

	"clonexport/core/clone"
	"clonexport/core/feature"
	"clonexport/core/translate"
)

type simple struct {
	header string
	value  func(*clone.Clone) string
}

func (s simple) Header() string              { return s.header }
func (s simple) Value(c *clone.Clone) string { return s.value(c) }

type featureField struct {
	header string
	f      feature.GeneFeature
	value  func(c *clone.Clone, f feature.GeneFeature) string
}

func (s featureField) Header() string              { return s.header + s.f.String() }
func (s featureField) Value(c *clone.Clone) string { return s.value(c, s.f) }

func init() {
	register("cloneId", 0, "clone identifier", func([]string) (Field, error) {
		return simple{"Clone ID", func(c *clone.Clone) string { return strconv.Itoa(c.ID()) }}, nil
	})
	register("count", 0, "clone read count", func([]string) (Field, error) {
		return simple{"Clone count", func(c *clone.Clone) string { return strconv.FormatInt(c.Count(), 10) }}, nil
	})
	register("fraction", 0, "clone fraction", func([]string) (Field, error) {
		return simple{"Clone fraction", func(c *clone.Clone) string {
			return strconv.FormatFloat(c.Fraction(), 'g', -1, 64)
		}}, nil
	})
	register("targets", 0, "number of targets", func([]string) (Field, error) {
		return simple{"Number of targets", func(c *clone.Clone) string { return strconv.Itoa(c.NumberOfTargets()) }}, nil
	})

	withFeature := func(name, help, header string, value func(*clone.Clone, feature.GeneFeature) string) {
		register(name, 1, help, func(args []string) (Field, error) {
			f, err := featureArg(args)
			if err != nil {
				return nil, err
			}
			return featureField{header: header, f: f, value: value}, nil
		})
	}
	withFeature("nFeature", "nucleotide sequence of a feature", "N. Seq. ", func(c *clone.Clone, f feature.GeneFeature) string {
		s, ok := c.Feature(f)
		if !ok {
			return ""
		}
		return string(clone.Bases(s))
	})
	withFeature("qFeature", "quality string of a feature", "Qual. ", func(c *clone.Clone, f feature.GeneFeature) string {
		s, ok := c.Feature(f)
		if !ok {
			return ""
		}
		return clone.QualString(s)
	})
	withFeature("aaFeature", "amino-acid sequence of a feature", "AA. Seq. ", func(c *clone.Clone, f feature.GeneFeature) string {
		s, ok := c.Feature(f)
		if !ok {
			return ""
		}
		return translate.Translate(clone.Bases(s), frameOf(c, f)).String()
	})
	withFeature("lengthOf", "length of a feature", "Length of ", func(c *clone.Clone, f feature.GeneFeature) string {
		s, ok := c.Feature(f)
		if !ok {
			return ""
		}
		return strconv.Itoa(s.Len())
	})
	withFeature("minFeatureQuality", "minimal quality of a feature", "Min. qual. ", func(c *clone.Clone, f feature.GeneFeature) string {
		s, ok := c.Feature(f)
		if !ok || s.Len() == 0 {
			return ""
		}
		m := s.Seq[0].Q
		for _, l := range s.Seq[1:] {
			if l.Q < m {
				m = l.Q
			}
		}
		return strconv.Itoa(int(m))
	})
}

// frameOf uses the first target frame known for f; features without one
// (such as a clone-level CDR3) are read from their first base.
func frameOf(c *clone.Clone, f feature.GeneFeature) translate.Frame {
	for i := 0; i < c.NumberOfTargets(); i++ {
		if fr, ok := c.Target(i).Frame(f); ok {
			return fr
		}
	}
	return translate.Frame{}
}
