// SPDX-License-Identifier: MIT

package interval

import "math"

// ulpsTranscendental is the outward widening applied to results of library
// functions (exp, log, sin, cos, pow) that are not correctly rounded.
const ulpsTranscendental = 4

// down rounds v one ulp toward -∞.
func down(v float64) float64 { return math.Nextafter(v, math.Inf(-1)) }

// up rounds v one ulp toward +∞.
func up(v float64) float64 { return math.Nextafter(v, math.Inf(1)) }

// downN rounds v n ulps toward -∞.
func downN(v float64, n int) float64 {
	for i := 0; i < n; i++ {
		v = down(v)
	}

	return v
}

// upN rounds v n ulps toward +∞.
func upN(v float64, n int) float64 {
	for i := 0; i < n; i++ {
		v = up(v)
	}

	return v
}

// outward builds [down(lo), up(hi)].
func outward(lo, hi float64) Interval {
	return fromBounds(down(lo), up(hi))
}

// mulBound multiplies two bounds with the interval convention 0·∞ = 0.
func mulBound(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return a * b
}

// Add returns x + y.
func (x Interval) Add(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty()
	}

	return outward(x.Lo+y.Lo, x.Hi+y.Hi)
}

// Sub returns x - y.
func (x Interval) Sub(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty()
	}

	return outward(x.Lo-y.Hi, x.Hi-y.Lo)
}

// Neg returns -x. Exact.
func (x Interval) Neg() Interval {
	if x.IsEmpty() {
		return x
	}

	return Interval{Lo: -x.Hi, Hi: -x.Lo}
}

// Mul returns x · y.
func (x Interval) Mul(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty()
	}
	a := mulBound(x.Lo, y.Lo)
	b := mulBound(x.Lo, y.Hi)
	c := mulBound(x.Hi, y.Lo)
	d := mulBound(x.Hi, y.Hi)

	return outward(math.Min(math.Min(a, b), math.Min(c, d)), math.Max(math.Max(a, b), math.Max(c, d)))
}

// Recip returns 1 / x.
// x = [0, 0] yields Empty; x straddling or touching 0 yields ErrDomain.
func (x Interval) Recip() (Interval, error) {
	if x.IsEmpty() {
		return x, nil
	}
	if x.Lo == 0 && x.Hi == 0 {
		return Empty(), nil
	}
	if x.ContainsZero() {
		return Entire(), ErrDomain
	}

	return outward(1/x.Hi, 1/x.Lo), nil
}

// Div returns x / y with the same domain policy as Recip.
func (x Interval) Div(y Interval) (Interval, error) {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(), nil
	}
	r, err := y.Recip()
	if err != nil {
		return Entire(), err
	}

	return x.Mul(r), nil
}

// DivideExtended solves b·t ∈ n for t when b may contain zero.
//
// It returns the enclosure as at most two pieces (left, right):
//
//	0 ∉ b:             left = n / b, right = Empty
//	0 ∈ n:             left = Entire, right = Empty (no information)
//	b = [0, 0], 0 ∉ n: both Empty (no t exists)
//	0 ∈ b, 0 ∉ n:      left = (-∞, p], right = [q, +∞); either may be Empty
//	                   when b touches zero from one side only
func DivideExtended(n, b Interval) (left, right Interval) {
	if n.IsEmpty() || b.IsEmpty() {
		return Empty(), Empty()
	}
	if !b.ContainsZero() {
		q, _ := n.Div(b)

		return q, Empty()
	}
	if n.ContainsZero() {
		return Entire(), Empty()
	}
	if b.Lo == 0 && b.Hi == 0 {
		return Empty(), Empty()
	}

	left, right = Empty(), Empty()
	if n.Lo > 0 {
		if b.Lo < 0 {
			left = Interval{Lo: math.Inf(-1), Hi: up(n.Lo / b.Lo)}
		}
		if b.Hi > 0 {
			right = Interval{Lo: down(n.Lo / b.Hi), Hi: math.Inf(1)}
		}

		return left, right
	}
	// n.Hi < 0
	if b.Hi > 0 {
		left = Interval{Lo: math.Inf(-1), Hi: up(n.Hi / b.Hi)}
	}
	if b.Lo < 0 {
		right = Interval{Lo: down(n.Hi / b.Lo), Hi: math.Inf(1)}
	}

	return left, right
}

// Sqr returns x² (tighter than x·x when x straddles 0).
func (x Interval) Sqr() Interval {
	if x.IsEmpty() {
		return x
	}
	lo2, hi2 := x.Lo*x.Lo, x.Hi*x.Hi
	switch {
	case x.Lo >= 0:
		return fromBounds(math.Max(0, down(lo2)), up(hi2))
	case x.Hi <= 0:
		return fromBounds(math.Max(0, down(hi2)), up(lo2))
	}

	return fromBounds(0, up(math.Max(lo2, hi2)))
}

// Pow returns xⁿ for a non-negative integer exponent.
func (x Interval) Pow(n uint) Interval {
	if x.IsEmpty() {
		return x
	}
	switch n {
	case 0:
		return Point(1)
	case 1:
		return x
	case 2:
		return x.Sqr()
	}
	p := float64(n)
	plo, phi := math.Pow(x.Lo, p), math.Pow(x.Hi, p)
	if n%2 == 1 {
		return fromBounds(downN(plo, ulpsTranscendental), upN(phi, ulpsTranscendental))
	}
	switch {
	case x.Lo >= 0:
		return fromBounds(math.Max(0, downN(plo, ulpsTranscendental)), upN(phi, ulpsTranscendental))
	case x.Hi <= 0:
		return fromBounds(math.Max(0, downN(phi, ulpsTranscendental)), upN(plo, ulpsTranscendental))
	}

	return fromBounds(0, upN(math.Max(plo, phi), ulpsTranscendental))
}

// AddConst returns x + c.
func (x Interval) AddConst(c float64) Interval { return x.Add(Point(c)) }

// MulConst returns c · x.
func (x Interval) MulConst(c float64) Interval { return x.Mul(Point(c)) }

// Const returns the point interval [c, c]; the receiver only selects the type.
func (Interval) Const(c float64) Interval { return Point(c) }
