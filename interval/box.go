// SPDX-License-Identifier: MIT

package interval

import (
	"math"
	"strings"
)

// Box is an ordered Cartesian product of intervals, the unit of work of the
// solver. A box is empty when any component is empty.
type Box []Interval

// NewBox builds a box from [lo_i, hi_i] pairs.
// It returns ErrDimensionMismatch when the slices differ in length.
func NewBox(lo, hi []float64) (Box, error) {
	if len(lo) != len(hi) {
		return nil, ErrDimensionMismatch
	}
	b := make(Box, len(lo))
	for i := range lo {
		b[i] = New(lo[i], hi[i])
	}

	return b, nil
}

// Cube returns the n-dimensional box [lo, hi]ⁿ.
func Cube(n int, lo, hi float64) Box {
	b := make(Box, n)
	for i := range b {
		b[i] = New(lo, hi)
	}

	return b
}

// PointBox returns the degenerate box {p}.
func PointBox(p []float64) Box {
	b := make(Box, len(p))
	for i, v := range p {
		b[i] = Point(v)
	}

	return b
}

// Dim returns the number of components.
func (b Box) Dim() int { return len(b) }

// Clone returns an independent copy of b.
func (b Box) Clone() Box {
	c := make(Box, len(b))
	copy(c, b)

	return c
}

// IsEmpty reports whether some component is empty.
func (b Box) IsEmpty() bool {
	for _, x := range b {
		if x.IsEmpty() {
			return true
		}
	}

	return false
}

// Bounded reports whether every component is bounded.
func (b Box) Bounded() bool {
	for _, x := range b {
		if !x.Bounded() {
			return false
		}
	}

	return true
}

// Mid returns the per-component Mid point.
func (b Box) Mid() []float64 {
	m := make([]float64, len(b))
	for i, x := range b {
		m[i] = x.Mid()
	}

	return m
}

// MaxWidth returns the largest component width.
func (b Box) MaxWidth() float64 {
	w := 0.0
	for _, x := range b {
		w = math.Max(w, x.Width())
	}

	return w
}

// Intersect returns b ∩ c component-wise. The result may be empty.
func (b Box) Intersect(c Box) Box {
	out := make(Box, len(b))
	for i := range b {
		out[i] = b[i].Intersect(c[i])
	}

	return out
}

// Intersects reports whether b ∩ c is non-empty. Shared faces count.
func (b Box) Intersects(c Box) bool {
	for i := range b {
		if !b[i].Intersects(c[i]) {
			return false
		}
	}

	return true
}

// Hull returns the smallest box containing both b and c.
func (b Box) Hull(c Box) Box {
	out := make(Box, len(b))
	for i := range b {
		out[i] = b[i].Hull(c[i])
	}

	return out
}

// Subset reports whether b ⊆ c.
func (b Box) Subset(c Box) bool {
	for i := range b {
		if !b[i].Subset(c[i]) {
			return false
		}
	}

	return true
}

// Interior reports whether b lies strictly inside c in every component.
func (b Box) Interior(c Box) bool {
	for i := range b {
		if !b[i].Interior(c[i]) {
			return false
		}
	}

	return true
}

// Contains reports whether the point p lies in b.
func (b Box) Contains(p []float64) bool {
	if len(p) != len(b) {
		return false
	}
	for i, x := range b {
		if !x.Contains(p[i]) {
			return false
		}
	}

	return true
}

// String renders b as "[lo, hi] × [lo, hi] × ...".
func (b Box) String() string {
	parts := make([]string, len(b))
	for i, x := range b {
		parts[i] = x.String()
	}

	return strings.Join(parts, " × ")
}
