// SPDX-License-Identifier: MIT

// Package matrix offers the dense point-matrix kernels the solver needs to
// build an approximate inverse of a midpoint Jacobian.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - LU factorization with partial (row) pivoting.
//   - Inverse built on LU, reporting ErrSingular on (numerically) zero pivots.
//
// The inverse is only an approximation: interval code downstream treats it
// as an arbitrary preconditioner, so rigor never depends on its accuracy.
// Everything here is deterministic and allocation-explicit; no function
// keeps state between calls, so concurrent use on distinct inputs is safe.
package matrix
