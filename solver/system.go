// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
)

// System is a square system f: ℝⁿ → ℝⁿ given twice over the same
// generic code: once on intervals (F) and once on dual numbers (DF).
//
//	func circle[T interval.Numeric[T]](x []T) ([]T, error) { ... }
//	sys := solver.NewSystem(2, circle[interval.Interval], circle[autodiff.Dual])
//
// Both functions must report an undefined operation with interval.ErrDomain
// and must not retain their argument slices.
type System struct {
	Dim int
	F   func([]interval.Interval) ([]interval.Interval, error)
	DF  autodiff.Func
}

// NewSystem bundles the interval and dual evaluations of a dim×dim system.
func NewSystem(
	dim int,
	f func([]interval.Interval) ([]interval.Interval, error),
	df func([]autodiff.Dual) ([]autodiff.Dual, error),
) System {
	return System{Dim: dim, F: f, DF: df}
}

// validate checks the system and the initial box before any work starts.
func (s System) validate(box interval.Box) error {
	if s.Dim < 1 || s.F == nil || s.DF == nil {
		return ErrNilSystem
	}
	if len(box) == 0 {
		return ErrEmptyBox
	}
	if len(box) != s.Dim {
		return fmt.Errorf("%w: box has %d components, system %d", ErrDimensionMismatch, len(box), s.Dim)
	}
	for i, x := range box {
		if math.IsNaN(x.Lo) || math.IsNaN(x.Hi) {
			return fmt.Errorf("%w: component %d is %v", ErrMalformedBox, i, x)
		}
		if x.IsEmpty() {
			return fmt.Errorf("%w: component %d", ErrEmptyBox, i)
		}
		// [+Inf, +Inf] and [-Inf, -Inf] hold no real number.
		if x.Lo == x.Hi && math.IsInf(x.Lo, 0) {
			return fmt.Errorf("%w: component %d is %v", ErrMalformedBox, i, x)
		}
	}

	return s.probe(box.Mid())
}

// probe evaluates both forms at the point c. A point never straddles a
// domain boundary, so any error other than interval.ErrDomain is a fault
// of the system itself.
func (s System) probe(c []float64) error {
	p := interval.PointBox(c)
	vals, err := s.F(p)
	switch {
	case err != nil && !errors.Is(err, interval.ErrDomain):
		return fmt.Errorf("%w: F: %w", ErrBadSystem, err)
	case err == nil && len(vals) != s.Dim:
		return fmt.Errorf("%w: F returned %d values for %d unknowns", ErrBadSystem, len(vals), s.Dim)
	}
	if _, _, err = autodiff.Jacobian(s.DF, p); err != nil && !errors.Is(err, interval.ErrDomain) {
		return fmt.Errorf("%w: DF: %w", ErrBadSystem, err)
	}

	return nil
}
