// internal/filter/filter.go
package filter

import "clonexport/core/clone"

// Filter is the single capability every clone selector implements.
// Implementations must be pure.
type Filter interface {
	Accept(c *clone.Clone) bool
}

// Func adapts a plain function to Filter.
type Func func(*clone.Clone) bool

func (f Func) Accept(c *clone.Clone) bool { return f(c) }

// All accepts every clone.
type All struct{}

func (All) Accept(*clone.Clone) bool { return true }

// IDs selects clones by ID. An empty include list means "all"; exclusion
// wins over inclusion.
type IDs struct {
	include map[int]struct{}
	exclude map[int]struct{}
}

func NewIDs(include, exclude []int) IDs {
	set := func(ids []int) map[int]struct{} {
		if len(ids) == 0 {
			return nil
		}
		m := make(map[int]struct{}, len(ids))
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}
	return IDs{include: set(include), exclude: set(exclude)}
}

func (f IDs) Accept(c *clone.Clone) bool {
	if f.include != nil {
		if _, ok := f.include[c.ID()]; !ok {
			return false
		}
	}
	_, drop := f.exclude[c.ID()]
	return !drop
}

// Chain runs base first and only consults productive when base accepts.
func Chain(base Filter, productive Productive) Filter {
	if base == nil {
		base = All{}
	}
	return chain{base: base, productive: productive}
}

type chain struct {
	base       Filter
	productive Productive
}

func (c chain) Accept(cl *clone.Clone) bool {
	if !c.base.Accept(cl) {
		return false
	}
	return c.productive.Accept(cl)
}

// Apply keeps the clones f accepts; fractions are recalculated over the
// survivors (see clone.Transform).
func Apply(set *clone.CloneSet, f Filter) *clone.CloneSet {
	return clone.Transform(set, f.Accept)
}
