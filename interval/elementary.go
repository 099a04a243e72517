// SPDX-License-Identifier: MIT

package interval

import "math"

// Sqrt returns √x.
// x entirely negative yields Empty; x straddling 0 from below yields ErrDomain.
func (x Interval) Sqrt() (Interval, error) {
	if x.IsEmpty() {
		return x, nil
	}
	if x.Hi < 0 {
		return Empty(), nil
	}
	if x.Lo < 0 {
		return Entire(), ErrDomain
	}

	// math.Sqrt is correctly rounded: one ulp each side suffices.
	return fromBounds(math.Max(0, down(math.Sqrt(x.Lo))), up(math.Sqrt(x.Hi))), nil
}

// Exp returns eˣ.
func (x Interval) Exp() Interval {
	if x.IsEmpty() {
		return x
	}

	return fromBounds(math.Max(0, downN(math.Exp(x.Lo), ulpsTranscendental)), upN(math.Exp(x.Hi), ulpsTranscendental))
}

// Log returns the natural logarithm of x.
// x ⊆ (-∞, 0] yields Empty; x straddling 0 yields ErrDomain.
func (x Interval) Log() (Interval, error) {
	if x.IsEmpty() {
		return x, nil
	}
	if x.Hi <= 0 {
		return Empty(), nil
	}
	if x.Lo <= 0 {
		return Entire(), ErrDomain
	}

	return fromBounds(downN(math.Log(x.Lo), ulpsTranscendental), upN(math.Log(x.Hi), ulpsTranscendental)), nil
}

// Sin returns sin(x).
func (x Interval) Sin() Interval {
	// sin peaks at π/2 + 2kπ and bottoms at -π/2 + 2kπ.
	return x.periodic(math.Sin, math.Pi/2, -math.Pi/2)
}

// Cos returns cos(x).
func (x Interval) Cos() Interval {
	// cos peaks at 2kπ and bottoms at π + 2kπ.
	return x.periodic(math.Cos, 0, math.Pi)
}

// periodic encloses a 2π-periodic function with range [-1, 1], given the
// phase of its maxima and minima.
func (x Interval) periodic(fn func(float64) float64, maxPhase, minPhase float64) Interval {
	if x.IsEmpty() {
		return x
	}
	if !x.Bounded() || x.Width() >= 2*math.Pi {
		return Interval{Lo: -1, Hi: 1}
	}

	a, b := fn(x.Lo), fn(x.Hi)
	lo := downN(math.Min(a, b), ulpsTranscendental)
	hi := upN(math.Max(a, b), ulpsTranscendental)
	if hitsPhase(x, maxPhase) {
		hi = 1
	}
	if hitsPhase(x, minPhase) {
		lo = -1
	}

	return fromBounds(math.Max(-1, lo), math.Min(1, hi))
}

// hitsPhase reports whether x may contain a point phase + 2kπ.
// The test is slackened by a relative tolerance so that an extremum lost to
// the rounding of π is still treated as contained.
func hitsPhase(x Interval, phase float64) bool {
	const twoPi = 2 * math.Pi
	k := math.Ceil((x.Lo - phase) / twoPi)
	p := phase + k*twoPi
	slack := 1e-12 * (1 + math.Abs(p))
	if p-slack > x.Hi {
		// the previous extremum may sit just below x.Lo after rounding
		q := p - twoPi

		return q+slack >= x.Lo
	}

	return true
}
