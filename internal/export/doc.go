// Package export computes the abundance cutoff for a clone set and streams
// the surviving clones to a Sink while exposing lock-free progress.
//
// Filtering happens before this package (filter.Apply); Cutoff is computed
// over the filtered set, and Exporter only walks the stored order.
package export
