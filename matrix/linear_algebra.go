// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels (pivoted LU, Inverse).
//
// Notes:
//   - Every facade validates first, then either walks *Dense storage
//     directly (fast path) or copies through At (fallback).
//   - Errors are sentinels wrapped with an operation tag via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// singularTol is the relative pivot threshold: a pivot with
// |p| <= singularTol * max|a_ij| is treated as zero.
const singularTol = 1e-14

// Operation name constants for unified error wrapping.
const (
	opLU      = "LU"
	opSolve   = "LU.Solve"
	opInverse = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original
// error via %w. Call only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// flatten returns a row-major copy of m's entries.
func flatten(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		out := make([]float64, len(d.data))
		copy(out, d.data)

		return out, nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i*c+j] = v
		}
	}

	return out, nil
}

// luFactors holds a factorization P·A = L·U with partial pivoting.
// L (unit lower) and U share one row-major buffer; perm[i] is the source
// row of A placed at row i.
type luFactors struct {
	n    int
	lu   []float64
	perm []int
}

// factorize computes P·A = L·U by Gaussian elimination with partial pivoting.
//
// Implementation:
//   - Stage 1: ValidateSquare + ValidateFinite; copy A into a work buffer.
//   - Stage 2: for each column k pick the row with the largest |a_ik|
//     (ties keep the lower index), swap, eliminate below.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular when a pivot is zero relative to max|a_ij|.
//
// Determinism: fixed loop order and tie-breaking → identical output for
// identical input.
// Complexity: O(n³) time, O(n²) space.
func factorize(m Matrix) (*luFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	a, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	n := m.Rows()
	scale := 0.0
	for _, v := range a {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == 0 {
		return nil, matrixErrorf(opLU, ErrSingular)
	}
	tol := singularTol * scale

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var i, j, k, p int
	for k = 0; k < n; k++ {
		// Pivot search
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(a[i*n+k]) > math.Abs(a[p*n+k]) {
				p = i
			}
		}
		if math.Abs(a[p*n+k]) <= tol {
			return nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		// Elimination below the pivot
		pivot := a[k*n+k]
		for i = k + 1; i < n; i++ {
			l := a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return &luFactors{n: n, lu: a, perm: perm}, nil
}

// solve returns x with A·x = b using the stored factors.
// Errors: ErrDimensionMismatch when len(b) != n.
// Complexity: O(n²).
func (f *luFactors) solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	n := f.n
	x := make([]float64, n)
	var i, k int
	var sum float64
	// Forward substitution: L·y = P·b (y stored in x)
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// Backward substitution: U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return x, nil
}

// Inverse computes A⁻¹ column by column from a pivoted LU factorization.
// The input is not mutated; the result is a fresh Dense.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular (zero relative pivot, or a non-finite entry in the result).
//
// Complexity: O(n³) time, O(n²) space.
func Inverse(m Matrix) (*Dense, error) {
	f, err := factorize(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := f.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := f.solve(e)
		if err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			inv.data[i*n+col] = v
		}
	}

	return inv, nil
}
