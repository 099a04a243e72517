// SPDX-License-Identifier: MIT

// Package autodiff implements forward-mode automatic differentiation over
// intervals. A Dual carries an interval value together with an interval
// enclosure of its gradient, so evaluating a system written against
// interval.Numeric on Dual variables yields f(box) and J(box) in one pass.
//
// A nil gradient denotes a constant (all partial derivatives zero); it keeps
// literals cheap and lets Const work without knowing the dimension.
package autodiff

import (
	"github.com/katalvlaran/rootbox/interval"
)

// Dual is a value enclosure V with gradient enclosure D (∂/∂x_k in D[k]).
type Dual struct {
	V interval.Interval
	D []interval.Interval
}

var _ interval.Numeric[Dual] = Dual{}

// Variables seeds one Dual per component of b with a unit gradient.
func Variables(b interval.Box) []Dual {
	n := len(b)
	vars := make([]Dual, n)
	for i, x := range b {
		d := make([]interval.Interval, n)
		for k := range d {
			d[k] = interval.Point(0)
		}
		d[i] = interval.Point(1)
		vars[i] = Dual{V: x, D: d}
	}

	return vars
}

// Constant returns c as a Dual with zero gradient.
func Constant(c float64) Dual { return Dual{V: interval.Point(c)} }

// grad returns D[k], treating a nil gradient as zero.
func (a Dual) grad(k int) interval.Interval {
	if a.D == nil {
		return interval.Point(0)
	}

	return a.D[k]
}

// width returns the gradient length shared by a and b (0 when both constant).
func width(a, b Dual) int {
	if len(a.D) > len(b.D) {
		return len(a.D)
	}

	return len(b.D)
}

// combine builds the gradient ca·a.D + cb·b.D, skipping constant operands.
func combine(a Dual, ca interval.Interval, b Dual, cb interval.Interval) []interval.Interval {
	n := width(a, b)
	if n == 0 {
		return nil
	}
	d := make([]interval.Interval, n)
	for k := range d {
		switch {
		case a.D == nil:
			d[k] = cb.Mul(b.D[k])
		case b.D == nil:
			d[k] = ca.Mul(a.D[k])
		default:
			d[k] = ca.Mul(a.D[k]).Add(cb.Mul(b.D[k]))
		}
	}

	return d
}

// scaled returns s·a.D (nil for constants).
func (a Dual) scaled(s interval.Interval) []interval.Interval {
	if a.D == nil {
		return nil
	}
	d := make([]interval.Interval, len(a.D))
	for k, g := range a.D {
		d[k] = s.Mul(g)
	}

	return d
}

// Add returns a + b.
func (a Dual) Add(b Dual) Dual {
	n := width(a, b)
	var d []interval.Interval
	if n > 0 {
		d = make([]interval.Interval, n)
		for k := range d {
			d[k] = a.grad(k).Add(b.grad(k))
		}
	}

	return Dual{V: a.V.Add(b.V), D: d}
}

// Sub returns a - b.
func (a Dual) Sub(b Dual) Dual {
	n := width(a, b)
	var d []interval.Interval
	if n > 0 {
		d = make([]interval.Interval, n)
		for k := range d {
			d[k] = a.grad(k).Sub(b.grad(k))
		}
	}

	return Dual{V: a.V.Sub(b.V), D: d}
}

// Neg returns -a.
func (a Dual) Neg() Dual {
	return Dual{V: a.V.Neg(), D: a.scaled(interval.Point(-1))}
}

// Mul returns a · b (product rule).
func (a Dual) Mul(b Dual) Dual {
	return Dual{V: a.V.Mul(b.V), D: combine(a, b.V, b, a.V)}
}

// Div returns a / b. The quotient rule is written as (a' - q·b') / b.
func (a Dual) Div(b Dual) (Dual, error) {
	q, err := a.V.Div(b.V)
	if err != nil {
		return Dual{}, err
	}
	r, err := b.V.Recip()
	if err != nil {
		return Dual{}, err
	}
	d := combine(a, r, b, q.Mul(r).Neg())

	return Dual{V: q, D: d}, nil
}

// Sqr returns a².
func (a Dual) Sqr() Dual {
	return Dual{V: a.V.Sqr(), D: a.scaled(a.V.MulConst(2))}
}

// Pow returns aⁿ.
func (a Dual) Pow(n uint) Dual {
	if n == 0 {
		return Dual{V: interval.Point(1)}
	}
	s := a.V.Pow(n - 1).MulConst(float64(n))

	return Dual{V: a.V.Pow(n), D: a.scaled(s)}
}

// Sqrt returns √a. The derivative 1/(2√a) is undefined when √a touches 0,
// which surfaces as interval.ErrDomain.
func (a Dual) Sqrt() (Dual, error) {
	s, err := a.V.Sqrt()
	if err != nil {
		return Dual{}, err
	}
	if s.IsEmpty() || a.D == nil {
		return Dual{V: s, D: a.scaled(interval.Empty())}, nil
	}
	r, err := s.MulConst(2).Recip()
	if err != nil {
		return Dual{}, err
	}

	return Dual{V: s, D: a.scaled(r)}, nil
}

// Exp returns eᵃ.
func (a Dual) Exp() Dual {
	e := a.V.Exp()

	return Dual{V: e, D: a.scaled(e)}
}

// Log returns ln a.
func (a Dual) Log() (Dual, error) {
	l, err := a.V.Log()
	if err != nil {
		return Dual{}, err
	}
	if l.IsEmpty() || a.D == nil {
		return Dual{V: l, D: a.scaled(interval.Empty())}, nil
	}
	r, err := a.V.Recip()
	if err != nil {
		return Dual{}, err
	}

	return Dual{V: l, D: a.scaled(r)}, nil
}

// Sin returns sin a.
func (a Dual) Sin() Dual {
	return Dual{V: a.V.Sin(), D: a.scaled(a.V.Cos())}
}

// Cos returns cos a.
func (a Dual) Cos() Dual {
	return Dual{V: a.V.Cos(), D: a.scaled(a.V.Sin().Neg())}
}

// AddConst returns a + c.
func (a Dual) AddConst(c float64) Dual {
	return Dual{V: a.V.AddConst(c), D: a.D}
}

// MulConst returns c · a.
func (a Dual) MulConst(c float64) Dual {
	return Dual{V: a.V.MulConst(c), D: a.scaled(interval.Point(c))}
}

// Const returns c as a constant Dual; the receiver only selects the type.
func (Dual) Const(c float64) Dual { return Constant(c) }
