// internal/export/cutoff.go
package export

import "clonexport/core/clone"

// Cutoff returns the first index whose clone has fraction < minFraction or
// count < minCount, or set.Len() when none does.
//
// Count and fraction need not be co-monotonic, so no order is assumed.
func Cutoff(set *clone.CloneSet, minFraction float64, minCount int64) int {
	for i := 0; i < set.Len(); i++ {
		c := set.At(i)
		if c.Fraction() < minFraction || c.Count() < minCount {
			return i
		}
	}
	return set.Len()
}

// Bound combines a cutoff with a user limit; limit <= 0 means no limit.
func Bound(cutoff, limit int) int {
	if limit > 0 && limit < cutoff {
		return limit
	}
	return cutoff
}
