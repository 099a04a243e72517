// SPDX-License-Identifier: MIT

// Package interval provides closed real intervals with outward rounding,
// n-dimensional boxes, and the Numeric capability shared with autodiff.
//
// What & Why:
//
//	Every operation rounds its lower bound toward -∞ and its upper bound
//	toward +∞ (via math.Nextafter), so the true real result is always
//	enclosed. There is no process-wide rounding mode: kernels are pure
//	and safe to call from any number of goroutines.
//
// Special values:
//
//	Lo = -Inf / Hi = +Inf encode unbounded ends. The empty interval has
//	Lo > Hi (canonical [+Inf, -Inf], the lattice bottom). NaN bounds are
//	never produced; an indeterminate result widens to the entire line.
//
// Domain policy:
//
//	Elementary functions distinguish two cases. An argument that lies
//	entirely outside the function's domain yields Empty (no real value
//	exists there). An argument that straddles the domain boundary yields
//	ErrDomain, which callers treat as "cannot decide".
package interval
