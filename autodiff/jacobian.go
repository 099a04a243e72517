// SPDX-License-Identifier: MIT

package autodiff

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/rootbox/interval"
)

// ErrShape is returned when a system does not map n inputs to n outputs.
var ErrShape = errors.New("autodiff: system is not square")

// Func is a system of equations evaluated on Dual numbers.
type Func func([]Dual) ([]Dual, error)

// Jacobian evaluates f over b and returns the value enclosure f(b) and the
// interval Jacobian J(b) with J[i][k] ⊇ ∂f_i/∂x_k over b.
//
// Errors from f (typically interval.ErrDomain) are returned unchanged so
// callers can match them with errors.Is.
func Jacobian(f Func, b interval.Box) ([]interval.Interval, [][]interval.Interval, error) {
	n := len(b)
	out, err := f(Variables(b))
	if err != nil {
		return nil, nil, err
	}
	if len(out) != n {
		return nil, nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrShape, n, len(out))
	}

	values := make([]interval.Interval, n)
	jac := make([][]interval.Interval, n)
	for i, o := range out {
		values[i] = o.V
		row := make([]interval.Interval, n)
		for k := range row {
			row[k] = o.grad(k)
		}
		jac[i] = row
	}

	return values, jac, nil
}
