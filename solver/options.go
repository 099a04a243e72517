// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
)

// Defaults (single source of truth).
const (
	// DefaultRecoverRatio exempts a dimension from TRIM once it is narrower
	// than this fraction of its width when the box entered the pipeline.
	DefaultRecoverRatio = 0.1

	// DefaultTrimShrink is the width ratio below which a TRIM pass counts as
	// a change worth re-running the exclusion tests for.
	DefaultTrimShrink = 0.9

	// DefaultEdgeRatio: when box ∩ K is at most this fraction of the box in
	// every dimension, the pipeline retries on box ∩ K instead of splitting.
	DefaultEdgeRatio = 0.9

	// DefaultRefineStopRatio stops refinement once new/old width exceeds it.
	DefaultRefineStopRatio = 0.9

	// DefaultMaxRefine bounds refinement and overlap-resolution iterations.
	DefaultMaxRefine = 64

	// DefaultMaxPasses bounds Evaluating→Contracting loops and Krawczyk
	// retries for a single box.
	DefaultMaxPasses = 64
)

// Option configures FindAll via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the search parameters.
type Options struct {
	// Ctx carries tracing context and allows early cancellation. On
	// cancellation the remaining work is reported as rest boxes.
	Ctx context.Context

	// Workers is the size of the worker pool (>= 1).
	Workers int

	// Verbosity gates console output: ≥1 announces each proven root,
	// ≥2 also reports live counters.
	Verbosity int

	// GiveUpWidth, if > 0, abandons boxes whose widest side is at most
	// this width. 0 means split until floating-point exhaustion.
	GiveUpWidth float64

	// CollectRest merges abandoned boxes into Result.Rest.
	CollectRest bool

	RecoverRatio    float64
	TrimShrink      float64
	EdgeRatio       float64
	RefineStopRatio float64
	MaxRefine       int
	MaxPasses       int

	// Logger receives structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Progress, if set, receives a live counter line at Verbosity ≥ 2.
	Progress io.Writer

	// Metrics, if set, is updated as boxes are classified.
	Metrics *Metrics

	err error
}

// DefaultOptions returns Options with:
//   - one worker per GOMAXPROCS
//   - no give-up width, no rest collection, silent verbosity
//   - the Default* tuning constants.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Workers:         runtime.GOMAXPROCS(0),
		RecoverRatio:    DefaultRecoverRatio,
		TrimShrink:      DefaultTrimShrink,
		EdgeRatio:       DefaultEdgeRatio,
		RefineStopRatio: DefaultRefineStopRatio,
		MaxRefine:       DefaultMaxRefine,
		MaxPasses:       DefaultMaxPasses,
		Logger:          slog.Default(),
	}
}

// violate records the first invalid option.
func (o *Options) violate(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithContext sets a custom context for tracing and cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWorkers sets the worker pool size; n < 1 is a violation.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violate("Workers must be >= 1 (%d)", n)

			return
		}
		o.Workers = n
	}
}

// WithVerbosity sets the console verbosity level; negative is a violation.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		if v < 0 {
			o.violate("Verbosity cannot be negative (%d)", v)

			return
		}
		o.Verbosity = v
	}
}

// WithGiveUpWidth sets the minimum box width below which bisection stops.
//
//	w > 0:  abandon boxes whose widest side is ≤ w
//	w == 0: explicit "split until exhaustion"
//	w < 0 or NaN: invalid → ErrOptionViolation
func WithGiveUpWidth(w float64) Option {
	return func(o *Options) {
		if !(w >= 0) {
			o.violate("GiveUpWidth must be >= 0 (%v)", w)

			return
		}
		o.GiveUpWidth = w
	}
}

// WithRest enables collection of abandoned boxes into Result.Rest.
func WithRest() Option {
	return func(o *Options) { o.CollectRest = true }
}

// ratioOption validates a ratio in (0, 1).
func ratioOption(name string, r float64, set func(*Options)) Option {
	return func(o *Options) {
		if !(r > 0 && r < 1) {
			o.violate("%s must be in (0,1) (%v)", name, r)

			return
		}
		set(o)
	}
}

// WithRecoverRatio overrides DefaultRecoverRatio.
func WithRecoverRatio(r float64) Option {
	return ratioOption("RecoverRatio", r, func(o *Options) { o.RecoverRatio = r })
}

// WithTrimShrink overrides DefaultTrimShrink.
func WithTrimShrink(r float64) Option {
	return ratioOption("TrimShrink", r, func(o *Options) { o.TrimShrink = r })
}

// WithEdgeRatio overrides DefaultEdgeRatio.
func WithEdgeRatio(r float64) Option {
	return ratioOption("EdgeRatio", r, func(o *Options) { o.EdgeRatio = r })
}

// WithRefineStopRatio overrides DefaultRefineStopRatio.
func WithRefineStopRatio(r float64) Option {
	return ratioOption("RefineStopRatio", r, func(o *Options) { o.RefineStopRatio = r })
}

// WithMaxRefine overrides DefaultMaxRefine; n < 1 is a violation.
func WithMaxRefine(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violate("MaxRefine must be >= 1 (%d)", n)

			return
		}
		o.MaxRefine = n
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithProgress sets the writer for live counters (Verbosity ≥ 2).
func WithProgress(w io.Writer) Option {
	return func(o *Options) { o.Progress = w }
}

// WithMetrics attaches Prometheus instruments created by NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// gatherOptions applies opts over DefaultOptions.
func gatherOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o, o.err
}
