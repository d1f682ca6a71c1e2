// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clonexport"

// Run holds the gauges of one export pass on a private registry, so
// concurrent runs (and tests) never share state.
type Run struct {
	reg *prometheus.Registry

	Loaded      prometheus.Gauge
	FilteredOut prometheus.Gauge
	Written     prometheus.Gauge
	CutoffIndex prometheus.Gauge
	Duration    prometheus.Gauge
}

// New registers the run gauges labelled with runID and input.
func New(runID, input string) *Run {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	labels := prometheus.Labels{"run_id": runID, "input": input}
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return &Run{
		reg:         reg,
		Loaded:      gauge("clones_loaded", "Clones in the input set."),
		FilteredOut: gauge("clones_filtered_out", "Clones rejected by the filter chain."),
		Written:     gauge("clones_written", "Clones written to the sink."),
		CutoffIndex: gauge("cutoff_index", "Index of the first clone below the abundance thresholds."),
		Duration:    gauge("export_duration_seconds", "Wall time of the export pass."),
	}
}

// Registry exposes the run registry for gathering.
func (r *Run) Registry() *prometheus.Registry { return r.reg }

// Observe records the duration since start.
func (r *Run) Observe(start time.Time) { r.Duration.Set(time.Since(start).Seconds()) }

// WriteFile writes the node-exporter textfile atomically.
func (r *Run) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
