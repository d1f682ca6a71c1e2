// core/align/config.go
package align

import (
	"encoding/json"

	"github.com/mitchellh/hashstructure/v2"
	"gopkg.in/yaml.v3"

	"clonexport/core/feature"
)

// AlignmentConfig describes how one germline feature was aligned during
// clonal assembly. Values are immutable: every accessor that exposes the
// banded parameters hands out a copy, and updates return a new value.
type AlignmentConfig struct {
	featureToAlign   feature.GeneFeature
	relativeMinScore float32
	params           BandedParameters
}

// New builds a config. Arguments are not validated; that is the producer's job.
func New(featureToAlign feature.GeneFeature, relativeMinScore float32, params BandedParameters) AlignmentConfig {
	return AlignmentConfig{
		featureToAlign:   featureToAlign,
		relativeMinScore: relativeMinScore,
		params:           params.Clone(),
	}
}

func (c AlignmentConfig) FeatureToAlign() feature.GeneFeature { return c.featureToAlign }
func (c AlignmentConfig) RelativeMinScore() float32           { return c.relativeMinScore }

// AlignmentParameters returns a copy of the banded parameters.
func (c AlignmentConfig) AlignmentParameters() BandedParameters { return c.params.Clone() }

// WithAlignmentParameters returns a copy of c carrying p. c is unchanged.
func (c AlignmentConfig) WithAlignmentParameters(p BandedParameters) AlignmentConfig {
	c.params = p.Clone()
	return c
}

// Clone returns an independent, value-equal config.
func (c AlignmentConfig) Clone() AlignmentConfig {
	c.params = c.params.Clone()
	return c
}

// Equal is structural over all three fields.
func (c AlignmentConfig) Equal(o AlignmentConfig) bool {
	return c.featureToAlign == o.featureToAlign &&
		c.relativeMinScore == o.relativeMinScore &&
		c.params.Equal(o.params)
}

// Hash is consistent with Equal, so configs can key caches by value.
func (c AlignmentConfig) Hash() uint64 {
	// hashstructure only fails on funcs/chans, which the wire form never holds.
	h, _ := hashstructure.Hash(c.wire(), hashstructure.FormatV2, nil)
	return h
}

/* ------------------------------ wire forms ------------------------------ */

type configWire struct {
	FeatureToAlign      feature.GeneFeature `json:"featureToAlign" yaml:"featureToAlign"`
	RelativeMinScore    float32             `json:"relativeMinScore" yaml:"relativeMinScore"`
	AlignmentParameters BandedParameters    `json:"alignmentParameters" yaml:"alignmentParameters"`
}

func (c AlignmentConfig) wire() configWire {
	score := c.relativeMinScore
	if score == 0 {
		score = 0 // -0 and +0 are Equal, so they must hash alike
	}
	return configWire{
		FeatureToAlign:      c.featureToAlign,
		RelativeMinScore:    score,
		AlignmentParameters: c.params,
	}
}

func (c AlignmentConfig) MarshalJSON() ([]byte, error) { return json.Marshal(c.wire()) }

func (c *AlignmentConfig) UnmarshalJSON(b []byte) error {
	var w configWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*c = New(w.FeatureToAlign, w.RelativeMinScore, w.AlignmentParameters)
	return nil
}

func (c AlignmentConfig) MarshalYAML() (any, error) { return c.wire(), nil }

func (c *AlignmentConfig) UnmarshalYAML(n *yaml.Node) error {
	var w configWire
	if err := n.Decode(&w); err != nil {
		return err
	}
	*c = New(w.FeatureToAlign, w.RelativeMinScore, w.AlignmentParameters)
	return nil
}
