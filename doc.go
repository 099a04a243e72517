// SPDX-License-Identifier: MIT

// Package rootbox finds every root of a square nonlinear system inside a
// box, and proves each one.
//
// What is rootbox?
//
//	A parallel, verified all-solutions finder built from:
//		• interval/  outward-rounded interval arithmetic and boxes
//		• autodiff/  forward-mode dual numbers over intervals (Jacobians)
//		• matrix/    dense point kernels (pivoted LU, inverse) for preconditioning
//		• solver/    exclusion tests, TRIM, Krawczyk, splitting, worker pool
//		• problems/  registry of benchmark systems with known roots
//		• cmd/rootbox: CLI around the registry
//
// Guarantees:
//
//   - Every reported enclosure contains exactly one root of the system.
//   - Enclosures are pairwise disjoint.
//   - Every root in the search box lies in some enclosure or in a rest box
//     (regions the search gave up on).
//
// A system is written once, generically, and instantiated twice:
//
//	func circle[T interval.Numeric[T]](x []T) ([]T, error) {
//		return []T{
//			x[0].Sqr().Add(x[1].Sqr()).AddConst(-1),
//			x[0].Sub(x[1]),
//		}, nil
//	}
//
//	sys := solver.NewSystem(2, circle[interval.Interval], circle[autodiff.Dual])
//	res, err := solver.FindAll(sys, interval.Cube(2, -10, 10))
//
//	go get github.com/katalvlaran/rootbox
package rootbox
