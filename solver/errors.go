// SPDX-License-Identifier: MIT

package solver

import "errors"

// Sentinel errors. Only precondition violations are ever returned from
// FindAll; per-box failures (domain errors, singular Jacobians, degenerate
// boxes) are recovered inside the search.
var (
	// ErrNilSystem is returned when the system has no dimension or lacks F/DF.
	ErrNilSystem = errors.New("solver: system is nil or incomplete")

	// ErrEmptyBox is returned when the initial box has no components or an
	// empty component.
	ErrEmptyBox = errors.New("solver: initial box is empty")

	// ErrMalformedBox is returned when the initial box carries NaN bounds.
	ErrMalformedBox = errors.New("solver: initial box is malformed")

	// ErrDimensionMismatch is returned when the box dimension differs from
	// the system dimension.
	ErrDimensionMismatch = errors.New("solver: box and system dimensions differ")

	// ErrBadSystem is returned when the system fails at the center of the
	// initial box for a reason other than interval.ErrDomain, or does not
	// map n inputs to n outputs.
	ErrBadSystem = errors.New("solver: system evaluation failed")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")

	// ErrOverlappingRoots marks an unresolved overlap between a new proof
	// and a recorded one: neither could be shown to be the same root nor
	// distinct roots. It is reported in Result.Violations, never returned.
	ErrOverlappingRoots = errors.New("solver: overlapping proofs not resolved")
)
