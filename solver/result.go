// SPDX-License-Identifier: MIT

package solver

import (
	"sort"

	"github.com/katalvlaran/rootbox/interval"
)

// Solution is one proven-unique root.
//
// Invariant: Enclosure ⊆ Image ⊂ Origin, and Origin contains exactly one
// root of the system, which lies in Enclosure.
type Solution struct {
	// Enclosure is the refined, returned answer.
	Enclosure interval.Box
	// Origin is the box on which the Krawczyk test succeeded; kept for
	// overlap comparisons against later proofs.
	Origin interval.Box
	// Image is the Krawczyk image K(Origin) that certified the root.
	Image interval.Box
}

// Stats tallies box classifications over a run.
type Stats struct {
	Processed    int64 // boxes taken from the queue
	Inconclusive int64 // boxes split (including TRIM forks)
	NonExistent  int64 // boxes proven root-free
	Existent     int64 // boxes proven to hold a unique root
	Duplicates   int64 // proofs that matched an already recorded root
	GaveUp       int64 // boxes abandoned (give-up width or degenerate cut)
	Conflicts    int64 // unresolved overlaps, see ErrOverlappingRoots
}

// Result is the outcome of FindAll.
type Result struct {
	// Solutions holds one entry per proven root; enclosures are pairwise
	// disjoint. Sorted by enclosure lower bounds.
	Solutions []Solution

	// Rest is the union of abandoned boxes (only with WithRest, or after
	// cancellation). Roots there are unknown, not absent.
	Rest []interval.Box

	Stats Stats

	// Violations lists ErrOverlappingRoots occurrences.
	Violations []error

	// Interrupted is set when the context was cancelled before the queue
	// drained; unprocessed boxes were moved to Rest.
	Interrupted bool
}

// Boxes returns the solution enclosures.
func (r *Result) Boxes() []interval.Box {
	out := make([]interval.Box, len(r.Solutions))
	for i, s := range r.Solutions {
		out[i] = s.Enclosure
	}

	return out
}

// boxLess orders boxes by their lower bounds, component by component.
func boxLess(a, b interval.Box) bool {
	for i := range a {
		if a[i].Lo != b[i].Lo {
			return a[i].Lo < b[i].Lo
		}
	}

	return false
}

// sortSolutions makes the result order independent of worker scheduling.
func sortSolutions(sols []Solution) {
	sort.Slice(sols, func(i, j int) bool { return boxLess(sols[i].Enclosure, sols[j].Enclosure) })
}

// sortBoxes orders rest boxes the same way.
func sortBoxes(bs []interval.Box) {
	sort.Slice(bs, func(i, j int) bool { return boxLess(bs[i], bs[j]) })
}
