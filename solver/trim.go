// SPDX-License-Identifier: MIT

package solver

import "github.com/katalvlaran/rootbox/interval"

// contract runs one interval Gauss–Seidel (TRIM) pass over the bundle.
//
// For row i and column j the equation
//
//	J_ij (x_j − c_j) = −( f_i(c) + Σ_{k≠j} J_ik (X_k − c_k) )
//
// is solved with extended division and intersected with X_j. Both pieces
// empty proves the box root-free; two disjoint pieces fork the box.
// Partial sums left and right of j are kept as prefix and suffix arrays so
// each row costs O(n).
//
// The contracted box is kept only when some width shrank below
// TrimShrink × its previous width. Smaller gains are discarded so that the
// bundle stays valid for the Krawczyk stage that follows.
func (e *engine) contract(t *task) outcome {
	if t.passes > e.opts.MaxPasses {
		return outcomeUndecided
	}
	n := len(t.box)
	x := t.box.Clone()
	changed := false

	pre := make([]interval.Interval, n+1)
	terms := make([]interval.Interval, n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			terms[k] = t.jb[i][k].Mul(x[k].AddConst(-t.center[k]))
		}
		pre[0] = interval.Point(0)
		for k := 0; k < n; k++ {
			pre[k+1] = pre[k].Add(terms[k])
		}
		suf := interval.Point(0)

		for j := n - 1; j >= 0; j-- {
			rest := t.fc[i].Add(pre[j]).Add(suf)
			suf = suf.Add(terms[j])
			if x[j].Width() < e.opts.RecoverRatio*t.origin[j] {
				continue
			}

			left, right := interval.DivideExtended(rest.Neg(), t.jb[i][j])
			l := left.AddConst(t.center[j]).Intersect(x[j])
			r := right.AddConst(t.center[j]).Intersect(x[j])

			var nx interval.Interval
			switch {
			case l.IsEmpty() && r.IsEmpty():
				return outcomeEmpty
			case l.IsEmpty():
				nx = r
			case r.IsEmpty():
				nx = l
			case l.Hi < r.Lo:
				lb, rb := x.Clone(), x.Clone()
				lb[j], rb[j] = l, r
				t.children = append(t.children, lb, rb)

				return outcomeForked
			default:
				nx = l.Hull(r)
			}
			if nx.Width() < e.opts.TrimShrink*x[j].Width() {
				changed = true
			}
			x[j] = nx
		}
	}

	if !changed {
		return outcomeUndecided
	}
	t.box = x

	return outcomeChanged
}
