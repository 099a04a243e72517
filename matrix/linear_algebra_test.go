// SPDX-License-Identifier: MIT
// Package matrix_test validates the point kernels used to precondition
// interval Newton steps.
// Focus:
//  1. Sentinels on malformed inputs (nil, non-square, NaN, singular).
//  2. Inverse correctness, including matrices that need row pivoting.
//  3. Fast path (*Dense) and fallback (interface) agree.

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rootbox/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At-based fallback path.
type hide struct{ matrix.Matrix }

// mustRows builds a Dense from rows or fails the test.
func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// requireInverse asserts that a·inv is the n×n identity within tol.
func requireInverse(t *testing.T, a, inv matrix.Matrix, tol float64) {
	t.Helper()
	n := a.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				x, err := a.At(i, k)
				require.NoError(t, err)
				y, err := inv.At(k, j)
				require.NoError(t, err)
				sum += x * y
			}
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDeltaf(t, want, sum, tol, "(%d,%d)", i, j)
		}
	}
}

func TestDense_Basics(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)

	c := m.Clone()
	require.NoError(t, c.Set(1, 2, 0))
	v, _ = m.At(1, 2)
	assert.Equal(t, 7.0, v, "Clone must be independent")

	assert.Equal(t, []float64{0, 0, 7}, m.Row(1))
	assert.Nil(t, m.Row(5))
	assert.Equal(t, "[0, 0, 0]\n[0, 0, 7]\n", m.String())
}

func TestNewDenseFromRows_Errors(t *testing.T) {
	_, err := matrix.NewDenseFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestInverse_Errors(t *testing.T) {
	_, err := matrix.Inverse(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Inverse(mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Inverse(mustRows(t, [][]float64{{1, 2}, {2, 4}}))
	assert.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Inverse(mustRows(t, [][]float64{{0, 0}, {0, 0}}))
	assert.ErrorIs(t, err, matrix.ErrSingular)

	inf, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, inf.Set(0, 0, math.Inf(1)))
	_, err = matrix.Inverse(inf)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestInverse_NeedsPivoting(t *testing.T) {
	// A zero leading entry defeats an unpivoted Doolittle factorization.
	a := mustRows(t, [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{4, -3, 8},
	})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	requireInverse(t, a, inv, 1e-12)
}

func TestInverse_FallbackMatchesDense(t *testing.T) {
	a := mustRows(t, [][]float64{
		{4, 1, 0, 0},
		{1, 4, 1, 0},
		{0, 1, 4, 1},
		{0, 0, 1, 4},
	})
	fast, err := matrix.Inverse(a)
	require.NoError(t, err)
	slow, err := matrix.Inverse(hide{a})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, fast.Row(i), slow.Row(i))
	}

	requireInverse(t, hide{a}, fast, 1e-12)
}
