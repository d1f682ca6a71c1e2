// core/clone/set.go
package clone

import (
	"cmp"
	"slices"
)

// CloneSet owns an abundance-ordered list of clones plus their shared header.
type CloneSet struct {
	info   *SetInfo
	clones []*Clone
	total  int64
}

// NewCloneSet copies clones, attaches them to info and orders them by
// fraction, then count, both descending; ties keep input order.
func NewCloneSet(info *SetInfo, clones []*Clone) *CloneSet {
	if info == nil {
		info = NewSetInfo(nil, nil)
	}
	s := &CloneSet{info: info, clones: make([]*Clone, len(clones))}
	for i, c := range clones {
		cp := *c
		cp.info = info
		s.clones[i] = &cp
		s.total += c.count
	}
	sortByAbundance(s.clones)
	return s
}

func sortByAbundance(cs []*Clone) {
	slices.SortStableFunc(cs, func(a, b *Clone) int {
		if r := cmp.Compare(b.fraction, a.fraction); r != 0 {
			return r
		}
		return cmp.Compare(b.count, a.count)
	})
}

func (s *CloneSet) Info() *SetInfo    { return s.info }
func (s *CloneSet) Len() int          { return len(s.clones) }
func (s *CloneSet) At(i int) *Clone   { return s.clones[i] }
func (s *CloneSet) TotalCount() int64 { return s.total }

// Clones returns the clones in stored order. The slice is a copy.
func (s *CloneSet) Clones() []*Clone { return slices.Clone(s.clones) }

// Transform keeps the clones accepted by keep and recalculates fractions over
// the survivors' total count. Survivors stay abundance-ordered.
func Transform(s *CloneSet, keep func(*Clone) bool) *CloneSet {
	kept := make([]*Clone, 0, len(s.clones))
	var total int64
	for _, c := range s.clones {
		if keep(c) {
			kept = append(kept, c)
			total += c.count
		}
	}
	out := &CloneSet{info: s.info, clones: make([]*Clone, len(kept)), total: total}
	for i, c := range kept {
		cp := *c
		if total > 0 {
			cp.fraction = float64(c.count) / float64(total)
		} else {
			cp.fraction = 0
		}
		out.clones[i] = &cp
	}
	sortByAbundance(out.clones)
	return out
}

// Normalize recomputes every fraction as count / total count.
func Normalize(s *CloneSet) *CloneSet {
	return Transform(s, func(*Clone) bool { return true })
}
