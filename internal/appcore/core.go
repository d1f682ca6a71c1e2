// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"clonexport/internal/clns"
	"clonexport/internal/config"
	"clonexport/internal/export"
	"clonexport/internal/filter"
	"clonexport/internal/logging"
	"clonexport/internal/metrics"
	"clonexport/internal/progress"
	"clonexport/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitIO        = 3
	ExitCancelled = 130
)

type Options struct {
	Input  string
	Output string // "" or "-" is stdout
	RunID  string
	Config config.Config
}

// Streams are the process's standard streams.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run loads the clone set, filters it, applies the abundance cutoff and
// streams the survivors to the configured sink. It returns the exit code.
func Run(parent context.Context, st Streams, o Options, log *slog.Logger) int {
	cfg := o.Config
	start := time.Now()
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("run_id", o.RunID)
	m := metrics.New(o.RunID, o.Input)

	sf, err := NewSinkFactory(cfg)
	if err != nil {
		log.Error("invalid output options", "error", err)
		return ExitUsage
	}

	set, err := clns.ReadFrom(o.Input, st.Stdin)
	if err != nil {
		log.Error("load clone set", "error", err)
		return ExitUsage
	}
	m.Loaded.Set(float64(set.Len()))
	log.Info("loaded clone set", "input", o.Input, "clones", set.Len(), "total_count", set.TotalCount())
	for _, g := range set.Info().GeneTypes() {
		p, _ := set.Info().AlignerParameters(g)
		log.Debug("aligner parameters", "gene", g, "feature", p.FeatureToAlign().String(), "relative_min_score", p.RelativeMinScore())
	}

	var base filter.Filter
	if len(cfg.CloneIDs) > 0 || len(cfg.ExcludeIDs) > 0 {
		base = filter.NewIDs(cfg.CloneIDs, cfg.ExcludeIDs)
	}
	chain := filter.Chain(base, filter.Productive{
		FilterOutOfFrames: cfg.FilterOutOfFrames,
		FilterStopCodons:  cfg.FilterStops,
	})
	filtered := filter.Apply(set, chain)
	removed := set.Len() - filtered.Len()
	m.FilteredOut.Set(float64(removed))
	if removed > 0 {
		log.Info("filtered clones", "kept", filtered.Len(), "removed", removed)
	}

	cutoff := export.Cutoff(filtered, cfg.MinFraction, cfg.MinCount)
	bound := export.Bound(cutoff, cfg.Limit)
	m.CutoffIndex.Set(float64(cutoff))
	log.Debug("abundance cutoff", "cutoff", cutoff, "bound", bound)

	out, closeOut, err := openOutput(o.Output, st.Stdout)
	if err != nil {
		log.Error("open output", "error", err)
		return ExitIO
	}
	sink, err := sf.Open(out)
	if err != nil {
		_ = closeOut()
		log.Error("open sink", "error", err)
		return ExitUsage
	}

	e := export.NewExporter(filtered, sink, bound)
	g, gctx := errgroup.WithContext(parent)
	g.Go(func() error { return e.RunAndClose(gctx) })
	if !cfg.NoProgress {
		g.Go(func() error {
			return progress.Run(gctx, e, st.Stderr, progress.Options{
				Interval: cfg.ProgressInterval,
				TTY:      progress.IsTerminal(st.Stderr),
			})
		})
	}
	werr := g.Wait()
	if cerr := closeOut(); cerr != nil && werr == nil {
		werr = cerr
	}

	m.Written.Set(float64(e.Written()))
	m.Observe(start)
	log.Info("export finished", "written", e.Written(), "visited", e.Current(), "bound", bound, "elapsed", time.Since(start).Round(time.Millisecond))

	if cfg.MetricsFile != "" {
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			log.Error("write metrics", "path", cfg.MetricsFile, "error", err)
			return ExitIO
		}
	}

	switch {
	case werr == nil:
	case writers.IsBrokenPipe(werr):
		return ExitOK
	case errors.Is(werr, context.Canceled):
		return ExitCancelled
	default:
		log.Error("export failed", "error", werr)
		return ExitIO
	}
	if e.Written() == 0 {
		return cfg.NoMatchExitCode
	}
	return ExitOK
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
