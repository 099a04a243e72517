// SPDX-License-Identifier: MIT

package solver

import (
	"sync"

	"github.com/katalvlaran/rootbox/interval"
)

// restSet accumulates abandoned boxes. Overlapping or touching boxes are
// merged into their hull, so the stored boxes are pairwise disjoint.
type restSet struct {
	mu    sync.Mutex
	boxes []interval.Box
}

// add merges b into the set. Merging repeats until the grown hull touches
// no remaining entry.
func (r *restSet) add(b interval.Box) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := b.Clone()
	for {
		hit := -1
		for i, x := range r.boxes {
			if x.Intersects(merged) {
				hit = i

				break
			}
		}
		if hit < 0 {
			break
		}
		merged = merged.Hull(r.boxes[hit])
		last := len(r.boxes) - 1
		r.boxes[hit] = r.boxes[last]
		r.boxes = r.boxes[:last]
	}
	r.boxes = append(r.boxes, merged)
}

// snapshot returns the boxes in a deterministic order.
func (r *restSet) snapshot() []interval.Box {
	r.mu.Lock()
	out := make([]interval.Box, len(r.boxes))
	copy(out, r.boxes)
	r.mu.Unlock()
	sortBoxes(out)

	return out
}
