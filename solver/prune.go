// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
)

// task is the per-box working state threaded through the pipeline stages.
// It is owned by a single worker.
type task struct {
	box interval.Box

	// origin holds the component widths when the box entered the pipeline
	// (or was last replaced by a Krawczyk retry).
	origin []float64

	// fb is F(box) from the last evaluate, nil when that evaluation failed.
	fb []interval.Interval

	// Jacobian bundle, valid for box after a successful evaluate.
	center []float64
	fc     []interval.Interval   // f(center)
	jc     [][]interval.Interval // J(center)
	jb     [][]interval.Interval // J(box)

	passes   int
	children []interval.Box
}

func newTask(b interval.Box) *task {
	t := &task{box: b}
	t.resetOrigin()

	return t
}

func (t *task) resetOrigin() {
	t.origin = make([]float64, len(t.box))
	for i, x := range t.box {
		t.origin[i] = x.Width()
	}
}

// excludesZero reports whether some component provably misses zero.
// An empty component counts: the function has no value there at all.
func excludesZero(v []interval.Interval) bool {
	for _, x := range v {
		if !x.ContainsZero() {
			return true
		}
	}

	return false
}

// minNormal is the smallest positive normal float64.
const minNormal = 0x1p-1022

// underflowed reports whether some component of F(box) lies entirely in
// [-minNormal, minNormal]. Below that, outward rounding keeps zero in the
// enclosure of every sub-box, so the exclusion tests can no longer
// separate it from a root.
func underflowed(fb []interval.Interval) bool {
	for _, v := range fb {
		if v.Lo >= -minNormal && v.Hi <= minNormal {
			return true
		}
	}

	return false
}

// meanValue returns the mean-value form f(c) + J(box)·(box − c).
func meanValue(fc []interval.Interval, j [][]interval.Interval, box interval.Box, c []float64) []interval.Interval {
	out := make([]interval.Interval, len(fc))
	for i := range fc {
		acc := fc[i]
		for k := range box {
			acc = acc.Add(j[i][k].Mul(box[k].AddConst(-c[k])))
		}
		out[i] = acc
	}

	return out
}

// evaluate runs the two non-existence tests and fills the Jacobian bundle.
//
//  1. Natural extension: 0 ∉ F(box) for some i → empty.
//  2. Mean-value form: 0 ∉ f(c) + J(box)(box − c) for some i → empty.
//
// Any evaluation error (typically interval.ErrDomain on a box straddling a
// domain boundary) makes the box inconclusive.
func (e *engine) evaluate(t *task) outcome {
	t.passes++
	t.fb = nil
	n := len(t.box)

	fb, err := e.sys.F(t.box)
	if err != nil || len(fb) != n {
		e.evalFailed("F", t.box, err)

		return outcomeFailed
	}
	t.fb = fb
	if excludesZero(fb) {
		return outcomeEmpty
	}

	c := t.box.Mid()
	fc, jc, err := autodiff.Jacobian(e.sys.DF, interval.PointBox(c))
	if err != nil {
		e.evalFailed("DF(center)", t.box, err)

		return outcomeFailed
	}
	for _, v := range fc {
		if v.IsEmpty() {
			return outcomeFailed
		}
	}
	_, jb, err := autodiff.Jacobian(e.sys.DF, t.box)
	if err != nil {
		e.evalFailed("DF(box)", t.box, err)

		return outcomeFailed
	}
	if excludesZero(meanValue(fc, jb, t.box, c)) {
		return outcomeEmpty
	}

	t.center, t.fc, t.jc, t.jb = c, fc, jc, jb

	return outcomeUndecided
}

// evalFailed logs failures that are not routine domain errors.
func (e *engine) evalFailed(what string, b interval.Box, err error) {
	if err == nil || errors.Is(err, interval.ErrDomain) {
		return
	}
	e.log.Debug("system evaluation failed",
		slog.String("eval", what),
		slog.String("box", b.String()),
		slog.Any("error", err))
}
