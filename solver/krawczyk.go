// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
	"github.com/katalvlaran/rootbox/matrix"
)

// krawczyk returns the Krawczyk image
//
//	K = c − R·f(c) + (I − R·J)·(X − c)
//
// where J encloses the Jacobian over hull(X, c) and R approximates the
// inverse of the Jacobian midpoint. Complexity: O(n³).
func krawczyk(c []float64, fc []interval.Interval, j [][]interval.Interval, r [][]float64, x interval.Box) interval.Box {
	n := len(x)
	d := make([]interval.Interval, n)
	for k := range x {
		d[k] = x[k].AddConst(-c[k])
	}

	k := make(interval.Box, n)
	for i := 0; i < n; i++ {
		rf := interval.Point(0)
		for l := 0; l < n; l++ {
			rf = rf.Add(fc[l].MulConst(r[i][l]))
		}
		acc := interval.Point(c[i]).Sub(rf)
		for col := 0; col < n; col++ {
			m := interval.Point(0)
			if i == col {
				m = interval.Point(1)
			}
			for l := 0; l < n; l++ {
				m = m.Sub(j[l][col].MulConst(r[i][l]))
			}
			acc = acc.Add(m.Mul(d[col]))
		}
		k[i] = acc
	}

	return k
}

// hopeless reports a row of J whose every entry contains zero. Such a row
// has no usable pivot, so the preconditioner would be ill-conditioned.
func hopeless(j [][]interval.Interval) bool {
	for _, row := range j {
		all := true
		for _, v := range row {
			if !v.ContainsZero() {
				all = false

				break
			}
		}
		if all {
			return true
		}
	}

	return false
}

// preconditioner inverts the midpoint of the point Jacobian J(c).
func preconditioner(jc [][]interval.Interval) ([][]float64, error) {
	rows := make([][]float64, len(jc))
	for i, row := range jc {
		rows[i] = make([]float64, len(row))
		for k, v := range row {
			rows[i][k] = v.Mid()
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(m)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i := range out {
		out[i] = inv.Row(i)
	}

	return out, nil
}

// test runs the Krawczyk existence/uniqueness test on a bounded box.
//
//   - K ⊂ int(box): exactly one root; hand it to the solution set.
//   - K ∩ box = ∅: no root.
//   - otherwise the box becomes box ∩ K, and the pipeline is retried when
//     that shrank every side to at most EdgeRatio of its width.
func (e *engine) test(t *task) outcome {
	if !t.box.Bounded() || hopeless(t.jb) {
		return outcomeUndecided
	}
	r, err := preconditioner(t.jc)
	if err != nil {
		return outcomeUndecided
	}

	k := krawczyk(t.center, t.fc, t.jb, r, t.box)
	if !k.Intersects(t.box) {
		return outcomeEmpty
	}
	if k.Interior(t.box) {
		e.accept(t.box, k, r)

		return outcomeProven
	}

	small := k.Bounded()
	for i := range k {
		if k[i].Width() > e.opts.EdgeRatio*t.box[i].Width() {
			small = false
		}
	}
	if small {
		// A root on (or near) a face of the box: prove it in an inflated K.
		// Every root of box lies in K, hence in y. The root is reported only
		// when its refined enclosure lies inside the search box; one that
		// merely touches it may sit just outside.
		if y, ky, ok := e.inflatedProof(k, r); ok {
			ky = e.refine(ky, r)
			if !ky.Intersects(t.box) {
				return outcomeEmpty
			}
			if e.root == nil || ky.Subset(e.root) {
				e.accept(y, ky, r)

				return outcomeProven
			}
		}
	}

	next := t.box.Intersect(k)
	retry := t.passes <= e.opts.MaxPasses
	for i := range next {
		if next[i].Width() > e.opts.EdgeRatio*t.box[i].Width() {
			retry = false
		}
	}
	t.box = next
	if !retry {
		return outcomeUndecided
	}
	t.resetOrigin()

	return outcomeRetry
}

// inflate widens every side of k by a tenth of its width plus a few ulps.
func inflate(k interval.Box) interval.Box {
	y := make(interval.Box, len(k))
	for i, x := range k {
		m := x.Mag()
		d := 0.1*x.Width() + 4*(math.Nextafter(m, math.Inf(1))-m)
		y[i] = interval.Interval{Lo: x.Lo - d, Hi: x.Hi + d}
	}

	return y
}

// inflatedProof runs the Krawczyk test on inflate(k). On success y holds
// exactly one root, enclosed in ky.
func (e *engine) inflatedProof(k interval.Box, r [][]float64) (y, ky interval.Box, ok bool) {
	y = inflate(k)
	c := y.Mid()
	fc, _, err := autodiff.Jacobian(e.sys.DF, interval.PointBox(c))
	if err != nil {
		return nil, nil, false
	}
	_, jy, err := autodiff.Jacobian(e.sys.DF, y)
	if err != nil {
		return nil, nil, false
	}
	ky = krawczyk(c, fc, jy, r, y)
	if !ky.Interior(y) {
		return nil, nil, false
	}

	return y, ky, true
}

// refineStep applies one Krawczyk step centered at mid(k) and intersects
// the image with k. The preconditioner is rebuilt at mid(k); r is the
// fallback when that Jacobian is singular. ok is false when the step could
// not be evaluated or the image misses k.
func (e *engine) refineStep(k interval.Box, r [][]float64) (next interval.Box, ok bool) {
	m := k.Mid()
	fm, jm, err := autodiff.Jacobian(e.sys.DF, interval.PointBox(m))
	if err != nil {
		return k, false
	}
	if fresh, err := preconditioner(jm); err == nil {
		r = fresh
	}
	_, jk, err := autodiff.Jacobian(e.sys.DF, k)
	if err != nil {
		return k, false
	}
	next = krawczyk(m, fm, jk, r, k).Intersect(k)
	if next.IsEmpty() {
		return k, false
	}

	return next, true
}

// refine tightens a proven enclosure until a step shrinks the widest side
// by less than RefineStopRatio, or MaxRefine steps have run.
func (e *engine) refine(k interval.Box, r [][]float64) interval.Box {
	for i := 0; i < e.opts.MaxRefine; i++ {
		w := k.MaxWidth()
		if w == 0 {
			break
		}
		next, ok := e.refineStep(k, r)
		if !ok {
			break
		}
		k = next
		if next.MaxWidth()/w > e.opts.RefineStopRatio {
			break
		}
	}

	return k
}
