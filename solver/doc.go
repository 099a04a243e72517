// SPDX-License-Identifier: MIT

// Package solver finds all roots of a square nonlinear system inside a box
// and proves each one.
//
// What:
//
//   - Every box is tested with interval extensions of f: if some component
//     provably misses zero (natural or mean-value form), the box is empty.
//   - TRIM (interval Gauss–Seidel on the linearization) contracts the box
//     and may fork it around a gap.
//   - The Krawczyk operator either certifies a unique root, proves the box
//     empty, or shrinks it.
//   - Undecided boxes are bisected along the widest relative side; boxes
//     that cannot be split further (or are below a give-up width) are
//     abandoned into an optional rest list.
//
// Why:
//
//   - Rigor: all arithmetic is outward rounded, so "empty" and "unique root"
//     verdicts hold for the real system, not just for its floating-point
//     shadow.
//   - Completeness: every root in the initial box ends up in exactly one
//     solution enclosure or, when collected, in a rest box.
//
// Concurrency:
//
//	A pool of Workers goroutines shares one LIFO queue. Solutions, rest
//	boxes, counters and progress output are each guarded separately. The
//	search ends when the queue is empty and no worker holds a box.
//
// Options:
//
//	WithWorkers, WithGiveUpWidth, WithRest, WithVerbosity, WithLogger,
//	WithProgress, WithMetrics, WithContext, and the ratio tunables
//	(WithRecoverRatio, WithTrimShrink, WithEdgeRatio, WithRefineStopRatio,
//	WithMaxRefine).
//
// Errors:
//
//	ErrNilSystem, ErrEmptyBox, ErrMalformedBox, ErrDimensionMismatch,
//	ErrBadSystem, ErrOptionViolation. ErrOverlappingRoots is only ever
//	reported in Result.Violations.
//
// Example:
//
//	func circle[T interval.Numeric[T]](x []T) ([]T, error) {
//		return []T{
//			x[0].Sqr().Add(x[1].Sqr()).AddConst(-1),
//			x[0].Sub(x[1]),
//		}, nil
//	}
//
//	sys := solver.NewSystem(2, circle[interval.Interval], circle[autodiff.Dual])
//	res, err := solver.FindAll(sys, interval.Cube(2, -2, 2), solver.WithWorkers(4))
package solver
