package clone

import (
	"testing"

	"github.com/biogo/biogo/seq/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clonexport/core/align"
	"clonexport/core/feature"
	"clonexport/core/translate"
)

func TestNSeqRoundTrip(t *testing.T) {
	q := NSeq("c", "ACGTN", []byte{30, 30, 2, 40, 0})
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, "ACGTN", string(Bases(q)))
	assert.Equal(t, "??#I!", QualString(q))
	assert.Nil(t, Bases(nil))
	assert.Equal(t, "", QualString(nil))
}

func TestCloneFeatureFallsBackToTargets(t *testing.T) {
	cdr3 := NSeq("", "TGTGCC", nil)
	vr := NSeq("", "ATGAAA", nil)
	tg := NewTarget(
		map[feature.GeneFeature]*linear.QSeq{feature.VRegion: vr},
		map[feature.GeneFeature]translate.Frame{feature.VRegion: {}},
	)
	c := New(1, 10, 0, []Target{tg}, map[feature.GeneFeature]*linear.QSeq{feature.CDR3: cdr3})

	got, ok := c.Feature(feature.CDR3)
	require.True(t, ok)
	assert.Same(t, cdr3, got)

	got, ok = c.Feature(feature.VRegion)
	require.True(t, ok)
	assert.Same(t, vr, got)

	_, ok = c.Feature(feature.JRegion)
	assert.False(t, ok)

	fr, ok := c.Target(0).Frame(feature.VRegion)
	assert.True(t, ok)
	assert.Equal(t, translate.Frame{}, fr)
	_, ok = c.Target(0).Frame(feature.CDR3)
	assert.False(t, ok)
}

func TestNewCloneSetOrdersAndAttaches(t *testing.T) {
	info := NewSetInfo([]feature.GeneFeature{feature.CDR3}, nil)
	in := []*Clone{
		New(1, 5, 0.1, nil, nil),
		New(2, 50, 0.5, nil, nil),
		New(3, 7, 0.1, nil, nil),
		New(4, 5, 0.1, nil, nil),
	}
	s := NewCloneSet(info, in)
	require.Equal(t, 4, s.Len())

	var ids []int
	for _, c := range s.Clones() {
		ids = append(ids, c.ID())
		assert.Same(t, info, c.Info())
	}
	assert.Equal(t, []int{2, 3, 1, 4}, ids)
	assert.EqualValues(t, 67, s.TotalCount())

	// input clones stay detached
	assert.Nil(t, in[0].Info())
}

func TestTransformRecalculatesFractions(t *testing.T) {
	s := NewCloneSet(nil, []*Clone{
		New(1, 60, 0.6, nil, nil),
		New(2, 30, 0.3, nil, nil),
		New(3, 10, 0.1, nil, nil),
	})
	out := Transform(s, func(c *Clone) bool { return c.ID() != 1 })
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 2, out.At(0).ID())
	assert.InDelta(t, 0.75, out.At(0).Fraction(), 1e-9)
	assert.InDelta(t, 0.25, out.At(1).Fraction(), 1e-9)
	assert.EqualValues(t, 40, out.TotalCount())

	// source untouched
	assert.InDelta(t, 0.3, s.At(1).Fraction(), 1e-9)

	none := Transform(s, func(*Clone) bool { return false })
	assert.Equal(t, 0, none.Len())
}

func TestNormalizeZeroCounts(t *testing.T) {
	s := Normalize(NewCloneSet(nil, []*Clone{New(1, 0, 0.4, nil, nil)}))
	assert.Equal(t, 0.0, s.At(0).Fraction())
}

func TestSetInfoCopies(t *testing.T) {
	g, err := align.Preset("default")
	require.NoError(t, err)
	feats := []feature.GeneFeature{feature.VDJRegion}
	info := NewSetInfo(feats, g)
	feats[0] = feature.CDR3
	assert.Equal(t, []feature.GeneFeature{feature.VDJRegion}, info.AssemblingFeatures())
	assert.Equal(t, []string{"C", "J", "V"}, info.GeneTypes())
	v, ok := info.AlignerParameters("V")
	require.True(t, ok)
	assert.True(t, v.Equal(g["V"]))
	_, ok = info.AlignerParameters("D")
	assert.False(t, ok)
}
