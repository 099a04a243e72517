// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rootbox/interval"
)

var tracer = otel.Tracer("rootbox.solver")

// progressEvery is the number of processed boxes between progress lines.
const progressEvery = 1024

// engine encapsulates the state of one search.
type engine struct {
	sys     System
	root    interval.Box // the search box
	opts    Options
	log     *slog.Logger
	metrics *Metrics

	queue *workQueue
	sols  *solutionSet
	rest  *restSet
	stats *counters

	progressMu sync.Mutex
	progress   io.Writer
}

func newEngine(sys System, o Options) *engine {
	e := &engine{
		sys:      sys,
		opts:     o,
		log:      o.Logger,
		metrics:  o.Metrics,
		sols:     &solutionSet{},
		rest:     &restSet{},
		stats:    &counters{metrics: o.Metrics},
		progress: o.Progress,
	}
	var onDepth func(int)
	if e.metrics != nil {
		onDepth = func(d int) { e.metrics.QueueDepth.Set(float64(d)) }
	}
	e.queue = newWorkQueue(onDepth)

	return e
}

// process drives one box through the pipeline and returns its children.
func (e *engine) process(b interval.Box) []interval.Box {
	t := newTask(b)
	st, last := stageEvaluating, outcomeUndecided
	for st != stageDone {
		switch st {
		case stageEvaluating:
			last = e.evaluate(t)
		case stageContracting:
			last = e.contract(t)
		case stageTesting:
			last = e.test(t)
		case stageSplitting:
			last = e.split(t)
		}
		st = transition(st, last)
	}

	n := e.stats.processed.Add(1)
	e.stats.add(classOf(last))
	if e.opts.Verbosity >= 2 && n%progressEvery == 0 {
		e.report()
	}

	return t.children
}

// report writes one line of live counters.
func (e *engine) report() {
	s := e.stats.snapshot()
	e.log.Debug("progress",
		slog.Int64("processed", s.Processed),
		slog.Int64("existent", s.Existent),
		slog.Int64("nonexistent", s.NonExistent),
		slog.Int64("inconclusive", s.Inconclusive))
	if e.progress == nil {
		return
	}
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	fmt.Fprintf(e.progress, "processed=%d existent=%d nonexistent=%d inconclusive=%d giveup=%d duplicates=%d\n",
		s.Processed, s.Existent, s.NonExistent, s.Inconclusive, s.GaveUp, s.Duplicates)
}

// run starts the worker pool and blocks until the queue is exhausted or
// ctx is cancelled. It reports whether the run was interrupted.
func (e *engine) run(ctx context.Context, box interval.Box) bool {
	e.root = box.Clone()
	e.queue.push(box.Clone())
	if ctx.Err() != nil {
		e.queue.close()
	}

	stop := context.AfterFunc(ctx, e.queue.close)
	var g errgroup.Group
	for w := 0; w < e.opts.Workers; w++ {
		g.Go(func() error {
			for {
				b, ok := e.queue.pop()
				if !ok {
					return nil
				}
				e.queue.done(e.process(b))
			}
		})
	}
	_ = g.Wait()
	stop()

	left := e.queue.drain()
	for _, b := range left {
		e.rest.add(b)
	}

	return ctx.Err() != nil && len(left) > 0
}

// FindAll returns every root of sys inside box.
//
// Each box taken from the work queue passes through non-existence tests,
// TRIM contraction and the Krawczyk test, and is split when none of them
// decides it. Proven roots are deduplicated and refined; abandoned boxes
// are collected when WithRest is given.
//
// Guarantees:
//   - every returned enclosure contains exactly one root, and the
//     enclosures are pairwise disjoint;
//   - every root in box lies in some enclosure or, when collected, in Rest.
//
// Errors: ErrNilSystem, ErrEmptyBox, ErrMalformedBox, ErrDimensionMismatch,
// ErrBadSystem, ErrOptionViolation. Nothing raised during the search itself
// is returned.
func FindAll(sys System, box interval.Box, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(o.Ctx, "solver.FindAll",
		trace.WithAttributes(
			attribute.Int("dim", sys.Dim),
			attribute.Int("workers", o.Workers),
			attribute.Float64("give_up_width", o.GiveUpWidth),
		),
	)
	defer span.End()

	if err = sys.validate(box); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	start := time.Now()
	e := newEngine(sys, o)
	interrupted := e.run(ctx, box)

	res := &Result{Rest: e.rest.snapshot(), Stats: e.stats.snapshot(), Interrupted: interrupted}
	res.Solutions, res.Violations = e.sols.snapshot()
	if e.metrics != nil {
		e.metrics.ObserveSearch(start)
	}

	span.SetAttributes(
		attribute.Int("solutions", len(res.Solutions)),
		attribute.Int("rest", len(res.Rest)),
		attribute.Int64("processed", res.Stats.Processed),
		attribute.Bool("interrupted", interrupted),
	)
	span.SetStatus(codes.Ok, "")
	e.log.Debug("search finished",
		slog.Int("solutions", len(res.Solutions)),
		slog.Int64("processed", res.Stats.Processed),
		slog.Duration("elapsed", time.Since(start)))

	return res, nil
}

// FindAllSolutions is the positional form of FindAll.
//
// verbosity ≥ 1 prints proven roots to standard output, ≥ 2 also prints
// live counters. giveUpWidth ≤ 0 disables giving up. When rest is non-nil
// it receives the abandoned boxes.
func FindAllSolutions(sys System, box interval.Box, verbosity int, giveUpWidth float64, rest *[]interval.Box) ([]interval.Box, error) {
	opts := []Option{WithVerbosity(max(verbosity, 0)), WithGiveUpWidth(max(giveUpWidth, 0))}
	if verbosity > 0 {
		opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))))
	}
	if verbosity > 1 {
		opts = append(opts, WithProgress(os.Stdout))
	}
	if rest != nil {
		opts = append(opts, WithRest())
	}

	res, err := FindAll(sys, box, opts...)
	if err != nil {
		return nil, err
	}
	if rest != nil {
		*rest = res.Rest
	}

	return res.Boxes(), nil
}
