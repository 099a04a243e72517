// SPDX-License-Identifier: MIT

// Package problems is a registry of benchmark systems with known roots,
// shared by the solver tests and the rootbox CLI.
//
// Every system is written once as a generic function over
// interval.Numeric and instantiated for intervals and dual numbers.
package problems

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
	"github.com/katalvlaran/rootbox/solver"
)

// ErrUnknownProblem is returned by Lookup for unregistered names.
var ErrUnknownProblem = errors.New("problems: unknown problem")

// Problem is a benchmark system together with its search box.
type Problem struct {
	Name        string
	Description string
	System      solver.System

	// Lo and Hi bound the default search box.
	Lo, Hi []float64

	// Roots lists the roots inside the box, when known in closed form.
	Roots [][]float64

	// Singular is set when some root has a singular Jacobian; such a root
	// can never be certified and ends up in the rest boxes.
	Singular bool

	// GiveUpWidth is a sensible give-up width for the CLI and tests.
	GiveUpWidth float64
}

// Box returns a fresh copy of the default search box.
func (p Problem) Box() interval.Box {
	b, _ := interval.NewBox(p.Lo, p.Hi)

	return b
}

func circleLine[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{
		x[0].Sqr().Add(x[1].Sqr()).AddConst(-1),
		x[0].Sub(x[1]),
	}, nil
}

func noRoot[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{x[0].Sqr().AddConst(4)}, nil
}

func fourRoots[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{
		x[0].Sqr().Add(x[1].Sqr()).AddConst(-4),
		x[0].Mul(x[1]).AddConst(-1),
	}, nil
}

// powell is Powell's singular function shifted to (1, 1, 1, 1), its only
// root, where the Jacobian has rank 2. Kept off the origin so the squared
// terms stay above the underflow range near the root.
func powell[T interval.Numeric[T]](x []T) ([]T, error) {
	y := make([]T, len(x))
	for i := range x {
		y[i] = x[i].AddConst(-1)
	}

	return []T{
		y[0].Add(y[1].MulConst(10)),
		y[2].Sub(y[3]).MulConst(math.Sqrt(5)),
		y[1].Sub(y[2].MulConst(2)).Sqr(),
		y[0].Sub(y[3]).Sqr().MulConst(math.Sqrt(10)),
	}, nil
}

// broyden is the Broyden tridiagonal function of any dimension.
func broyden[T interval.Numeric[T]](x []T) ([]T, error) {
	n := len(x)
	out := make([]T, n)
	for i := range x {
		v := x[i].MulConst(-2).AddConst(3).Mul(x[i]).AddConst(1)
		if i > 0 {
			v = v.Sub(x[i-1])
		}
		if i < n-1 {
			v = v.Sub(x[i+1].MulConst(2))
		}
		out[i] = v
	}

	return out, nil
}

// sqrtShift is √x − 1; boxes reaching below zero raise interval.ErrDomain.
func sqrtShift[T interval.Numeric[T]](x []T) ([]T, error) {
	s, err := x[0].Sqrt()
	if err != nil {
		return nil, err
	}

	return []T{s.AddConst(-1)}, nil
}

func sine[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{x[0].Sin()}, nil
}

var registry = map[string]Problem{}

func register(p Problem) {
	if _, dup := registry[p.Name]; dup {
		panic(fmt.Sprintf("problems: duplicate registration %q", p.Name))
	}
	registry[p.Name] = p
}

func init() {
	s := 1 / math.Sqrt2
	register(Problem{
		Name:        "circle-line",
		Description: "x²+y²=1, x=y: two roots (±1/√2, ±1/√2)",
		System:      solver.NewSystem(2, circleLine[interval.Interval], circleLine[autodiff.Dual]),
		Lo:          []float64{-10, -10},
		Hi:          []float64{10, 10},
		Roots:       [][]float64{{-s, -s}, {s, s}},
	})
	register(Problem{
		Name:        "no-root",
		Description: "x²+4=0: no real root",
		System:      solver.NewSystem(1, noRoot[interval.Interval], noRoot[autodiff.Dual]),
		Lo:          []float64{-10},
		Hi:          []float64{10},
		Roots:       [][]float64{},
	})

	a, b := math.Sqrt(2+math.Sqrt(3)), math.Sqrt(2-math.Sqrt(3))
	register(Problem{
		Name:        "four-roots",
		Description: "x²+y²=4, xy=1: four roots",
		System:      solver.NewSystem(2, fourRoots[interval.Interval], fourRoots[autodiff.Dual]),
		Lo:          []float64{-5, -5},
		Hi:          []float64{5, 5},
		Roots:       [][]float64{{-a, -b}, {-b, -a}, {b, a}, {a, b}},
	})
	register(Problem{
		Name:        "powell",
		Description: "Powell singular function: root at (1,1,1,1) with singular Jacobian",
		System:      solver.NewSystem(4, powell[interval.Interval], powell[autodiff.Dual]),
		Lo:          []float64{0, 0, 0, 0},
		Hi:          []float64{2, 2, 2, 2},
		Roots:       [][]float64{{1, 1, 1, 1}},
		Singular:    true,
		GiveUpWidth: 1e-3,
	})
	register(Problem{
		Name:        "broyden3",
		Description: "Broyden tridiagonal function, n=3",
		System:      solver.NewSystem(3, broyden[interval.Interval], broyden[autodiff.Dual]),
		Lo:          []float64{-1, -1, -1},
		Hi:          []float64{0, 0, 0},
		Roots:       [][]float64{{-0.5267728494436549, -0.56764890907647, -0.4103122228685842}},
	})
	register(Problem{
		Name:        "sqrt-shift",
		Description: "√x − 1 on a box reaching outside the domain",
		System:      solver.NewSystem(1, sqrtShift[interval.Interval], sqrtShift[autodiff.Dual]),
		Lo:          []float64{-0.5},
		Hi:          []float64{4},
		Roots:       [][]float64{{1}},
		GiveUpWidth: 1e-10,
	})
	register(Problem{
		Name:        "sine",
		Description: "sin x on [-10, 10]: roots kπ, k = -3..3",
		System:      solver.NewSystem(1, sine[interval.Interval], sine[autodiff.Dual]),
		Lo:          []float64{-10},
		Hi:          []float64{10},
		Roots:       [][]float64{{-3 * math.Pi}, {-2 * math.Pi}, {-math.Pi}, {0}, {math.Pi}, {2 * math.Pi}, {3 * math.Pi}},
	})
}

// Names returns the registered problem names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Lookup returns the problem registered under name.
func Lookup(name string) (Problem, error) {
	p, ok := registry[name]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownProblem, name)
	}

	return p, nil
}

// All returns every registered problem, sorted by name.
func All() []Problem {
	names := Names()
	out := make([]Problem, len(names))
	for i, n := range names {
		out[i] = registry[n]
	}

	return out
}
