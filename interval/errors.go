// SPDX-License-Identifier: MIT

package interval

import "errors"

var (
	// ErrDomain is returned when an argument interval straddles the boundary
	// of an elementary function's natural domain (e.g. Sqrt of [-1, 4]).
	// It is an expected, frequent outcome near singularities and is never fatal.
	ErrDomain = errors.New("interval: argument partially outside domain")

	// ErrDimensionMismatch indicates boxes of different dimension were combined.
	ErrDimensionMismatch = errors.New("interval: dimension mismatch")
)
