// SPDX-License-Identifier: MIT

package interval

import (
	"fmt"
	"math"
)

// Interval is a closed real interval [Lo, Hi].
// Lo may be -Inf and Hi may be +Inf. Lo > Hi denotes the empty set.
type Interval struct {
	Lo float64
	Hi float64
}

// New returns [lo, hi]. NaN bounds widen to the entire line on that side.
// lo > hi yields the empty interval.
func New(lo, hi float64) Interval {
	return fromBounds(lo, hi)
}

// Point returns the degenerate interval [x, x].
func Point(x float64) Interval {
	return Interval{Lo: x, Hi: x}
}

// Entire returns (-∞, +∞).
func Entire() Interval {
	return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// Empty returns the canonical empty interval [+∞, -∞].
func Empty() Interval {
	return Interval{Lo: math.Inf(1), Hi: math.Inf(-1)}
}

// fromBounds builds an interval from computed bounds, replacing NaN
// with the corresponding infinity.
func fromBounds(lo, hi float64) Interval {
	if math.IsNaN(lo) {
		lo = math.Inf(-1)
	}
	if math.IsNaN(hi) {
		hi = math.Inf(1)
	}
	if lo > hi {
		return Empty()
	}

	return Interval{Lo: lo, Hi: hi}
}

// IsEmpty reports whether x contains no real number.
func (x Interval) IsEmpty() bool { return x.Lo > x.Hi }

// IsPoint reports whether x is a single finite number.
func (x Interval) IsPoint() bool { return x.Lo == x.Hi && !math.IsInf(x.Lo, 0) }

// Bounded reports whether both ends are finite.
// The empty interval is reported as bounded.
func (x Interval) Bounded() bool {
	if x.IsEmpty() {
		return true
	}

	return !math.IsInf(x.Lo, 0) && !math.IsInf(x.Hi, 0)
}

// Width returns Hi - Lo (+Inf when unbounded, 0 when empty).
// The value is a float approximation used for heuristics, not a rigorous bound.
func (x Interval) Width() float64 {
	if x.IsEmpty() {
		return 0
	}

	return x.Hi - x.Lo
}

// Mag returns max(|Lo|, |Hi|), the magnitude of x.
func (x Interval) Mag() float64 {
	if x.IsEmpty() {
		return 0
	}

	return math.Max(math.Abs(x.Lo), math.Abs(x.Hi))
}

// Mig returns min |t| over t in x (the mignitude); 0 when x contains 0.
func (x Interval) Mig() float64 {
	if x.IsEmpty() || x.ContainsZero() {
		return 0
	}

	return math.Min(math.Abs(x.Lo), math.Abs(x.Hi))
}

// Mid returns a finite point inside x.
//
// Bounded intervals use the midpoint. Unbounded ones use a cut point that
// drives bisection toward finiteness:
//
//	(-∞, +∞) → 0
//	[a, +∞)  → 0 if a < 0, else max(1, 2a)
//	(-∞, b]  → 0 if b > 0, else min(-1, 2b)
//
// When no finite point strictly beyond a is representable the result equals
// the finite end, which callers detect as a degenerate cut.
// Mid of the empty interval is NaN.
func (x Interval) Mid() float64 {
	if x.IsEmpty() {
		return math.NaN()
	}

	loInf, hiInf := math.IsInf(x.Lo, -1), math.IsInf(x.Hi, 1)
	switch {
	case loInf && hiInf:
		return 0
	case hiInf:
		return cutAbove(x.Lo)
	case loInf:
		return -cutAbove(-x.Hi)
	}

	m := 0.5*x.Lo + 0.5*x.Hi // no overflow for huge finite bounds
	if m < x.Lo {
		return x.Lo
	}
	if m > x.Hi {
		return x.Hi
	}

	return m
}

// cutAbove returns a finite point greater than a for the half-line [a, +∞),
// or a itself when none is representable.
func cutAbove(a float64) float64 {
	if a < 0 {
		return 0
	}
	c := math.Max(1, 2*a)
	if math.IsInf(c, 1) {
		if a < math.MaxFloat64 {
			return math.MaxFloat64
		}

		return a
	}

	return c
}

// ContainsZero reports whether 0 ∈ x.
func (x Interval) ContainsZero() bool { return x.Lo <= 0 && 0 <= x.Hi }

// Contains reports whether v ∈ x.
func (x Interval) Contains(v float64) bool { return x.Lo <= v && v <= x.Hi }

// Intersect returns x ∩ y (possibly empty).
func (x Interval) Intersect(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty()
	}

	return fromBounds(math.Max(x.Lo, y.Lo), math.Min(x.Hi, y.Hi))
}

// Intersects reports whether x ∩ y is non-empty. Touching endpoints count.
func (x Interval) Intersects(y Interval) bool {
	return !x.Intersect(y).IsEmpty()
}

// Hull returns the smallest interval containing both x and y.
func (x Interval) Hull(y Interval) Interval {
	switch {
	case x.IsEmpty():
		return y
	case y.IsEmpty():
		return x
	}

	return Interval{Lo: math.Min(x.Lo, y.Lo), Hi: math.Max(x.Hi, y.Hi)}
}

// Subset reports whether x ⊆ y. The empty set is a subset of everything.
func (x Interval) Subset(y Interval) bool {
	if x.IsEmpty() {
		return true
	}
	if y.IsEmpty() {
		return false
	}

	return y.Lo <= x.Lo && x.Hi <= y.Hi
}

// Interior reports whether x lies strictly inside y: y.Lo < x.Lo and x.Hi < y.Hi.
func (x Interval) Interior(y Interval) bool {
	if x.IsEmpty() {
		return true
	}
	if y.IsEmpty() {
		return false
	}

	return y.Lo < x.Lo && x.Hi < y.Hi
}

// String renders x as "[lo, hi]" or "∅".
func (x Interval) String() string {
	if x.IsEmpty() {
		return "∅"
	}

	return fmt.Sprintf("[%.17g, %.17g]", x.Lo, x.Hi)
}
