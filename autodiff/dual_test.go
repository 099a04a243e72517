// SPDX-License-Identifier: MIT

package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
)

// mixed exercises every Numeric operation; it is written once and evaluated
// on both representations, the way callers write their systems.
func mixed[T interval.Numeric[T]](x []T) ([]T, error) {
	q, err := x[0].Div(x[1])
	if err != nil {
		return nil, err
	}
	s, err := x[1].Sqrt()
	if err != nil {
		return nil, err
	}
	l, err := x[0].Log()
	if err != nil {
		return nil, err
	}

	// xy + x/y - √y, (x² + y³)/2, sin x + cos y + ln x, 5 - eˣ
	return []T{
		x[0].Mul(x[1]).Add(q).Sub(s),
		x[0].Sqr().Add(x[1].Pow(3)).MulConst(0.5),
		x[0].Sin().Add(x[1].Cos()).Add(l),
		x[0].Exp().Neg().AddConst(2).Add(x[1].Const(3)),
	}, nil
}

func TestJacobian_PointMatchesAnalytic(t *testing.T) {
	x, y := 1.3, 2.1
	vals, jac, err := autodiff.Jacobian(func(v []autodiff.Dual) ([]autodiff.Dual, error) {
		out, err := mixed(v)
		if err != nil {
			return nil, err
		}

		return out[:2], nil
	}, interval.PointBox([]float64{x, y}))
	require.NoError(t, err)

	assert.True(t, vals[0].Contains(x*y+x/y-math.Sqrt(y)))
	assert.True(t, vals[1].Contains((x*x+y*y*y)/2))

	want := [][]float64{
		{y + 1/y, x - x/(y*y) - 1/(2*math.Sqrt(y))},
		{x, 1.5 * y * y},
	}
	for i := range want {
		for k := range want[i] {
			g := jac[i][k]
			assert.InDeltaf(t, want[i][k], g.Mid(), 1e-12, "J[%d][%d]=%v", i, k, g)
			assert.Less(t, g.Width(), 1e-12)
		}
	}
}

func TestJacobian_EnclosesOverBox(t *testing.T) {
	b := interval.Box{interval.New(1, 2), interval.New(0.5, 1)}
	f := func(v []autodiff.Dual) ([]autodiff.Dual, error) {
		out, err := mixed(v)
		if err != nil {
			return nil, err
		}

		return out[2:], nil
	}
	// Only two outputs for two inputs keeps the system square.
	vals, jac, err := autodiff.Jacobian(f, b)
	require.NoError(t, err)

	for _, p := range [][]float64{{1, 0.5}, {1.5, 0.75}, {2, 1}} {
		x, y := p[0], p[1]
		assert.True(t, vals[0].Contains(math.Sin(x)+math.Cos(y)+math.Log(x)))
		assert.True(t, vals[1].Contains(5-math.Exp(x)))
		assert.True(t, jac[0][0].Contains(math.Cos(x)+1/x))
		assert.True(t, jac[0][1].Contains(-math.Sin(y)))
		assert.True(t, jac[1][0].Contains(-math.Exp(x)))
		assert.True(t, jac[1][1].Contains(0))
	}
	assert.Less(t, jac[1][1].Mag(), 1e-300, "constant term has zero gradient")
}

func TestJacobian_DomainErrorPropagates(t *testing.T) {
	f := func(v []autodiff.Dual) ([]autodiff.Dual, error) {
		s, err := v[0].Sqrt()
		if err != nil {
			return nil, err
		}

		return []autodiff.Dual{s}, nil
	}

	_, _, err := autodiff.Jacobian(f, interval.Box{interval.New(-1, 4)})
	assert.ErrorIs(t, err, interval.ErrDomain)

	// √ touching zero: the value exists but the derivative does not.
	_, _, err = autodiff.Jacobian(f, interval.Box{interval.New(0, 4)})
	assert.ErrorIs(t, err, interval.ErrDomain)

	// Entirely outside: empty value, no error.
	vals, _, err := autodiff.Jacobian(f, interval.Box{interval.New(-4, -1)})
	require.NoError(t, err)
	assert.True(t, vals[0].IsEmpty())
}

func TestJacobian_Shape(t *testing.T) {
	f := func(v []autodiff.Dual) ([]autodiff.Dual, error) { return v[:1], nil }

	_, _, err := autodiff.Jacobian(f, interval.Cube(2, 0, 1))
	assert.ErrorIs(t, err, autodiff.ErrShape)
}
