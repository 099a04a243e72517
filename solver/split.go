// SPDX-License-Identifier: MIT

package solver

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/rootbox/interval"
)

// splitDim picks the component to bisect: the first unbounded one if any,
// else the one maximizing width / max(1, |x|).
func splitDim(b interval.Box) int {
	best, score := 0, -1.0
	for i, x := range b {
		if !x.Bounded() {
			return i
		}
		s := x.Width() / math.Max(1, x.Mag())
		if s > score {
			best, score = i, s
		}
	}

	return best
}

// bisect cuts b[j] at its Mid point. ok is false when the cut does not fall
// strictly inside the component (floating-point exhaustion).
func bisect(b interval.Box, j int) (left, right interval.Box, ok bool) {
	x := b[j]
	cut := x.Mid()
	if !(x.Lo < cut && cut < x.Hi) {
		return nil, nil, false
	}
	left, right = b.Clone(), b.Clone()
	left[j] = interval.Interval{Lo: x.Lo, Hi: cut}
	right[j] = interval.Interval{Lo: cut, Hi: x.Hi}

	return left, right, true
}

// split bisects the box or gives it up. A box is given up when it is
// narrower than GiveUpWidth, when F(box) has underflowed in some component,
// or when no component can be cut any further.
func (e *engine) split(t *task) outcome {
	b := t.box
	if e.opts.GiveUpWidth > 0 && b.Bounded() && b.MaxWidth() <= e.opts.GiveUpWidth {
		e.abandon(b, "give-up width")

		return outcomeAbandoned
	}
	if t.fb != nil && underflowed(t.fb) {
		e.abandon(b, "underflow")

		return outcomeAbandoned
	}
	left, right, ok := bisect(b, splitDim(b))
	for j := 0; !ok && j < len(b); j++ {
		left, right, ok = bisect(b, j)
	}
	if !ok {
		e.abandon(b, "degenerate")

		return outcomeAbandoned
	}
	t.children = append(t.children, left, right)

	return outcomeSplit
}

// abandon moves b to the rest set when collection is enabled.
func (e *engine) abandon(b interval.Box, reason string) {
	if e.opts.CollectRest {
		e.rest.add(b)
	}
	e.log.Debug("box abandoned", slog.String("reason", reason), slog.String("box", b.String()))
}
