// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/rootbox/interval"
)

// solutionSet holds proven roots. All reads and writes, including the
// refinement done while deciding on a newcomer, happen under mu.
type solutionSet struct {
	mu         sync.Mutex
	sols       []Solution
	violations []error
}

type verdict uint8

const (
	verdictNew verdict = iota
	verdictDuplicate
	verdictConflict
)

// sameRoot reports whether the root certified in origin (enclosed in k)
// is provably the root already recorded in prev.
//
//   - k ⊆ prev.Enclosure or k ⊆ prev.Origin: our root lies in prev's
//     uniqueness box.
//   - origin ⊆ prev.Origin: same argument on the proving boxes.
//   - prev.Enclosure ⊆ origin: prev's root lies in our uniqueness box.
func sameRoot(origin, k interval.Box, prev *Solution) bool {
	return k.Subset(prev.Enclosure) ||
		k.Subset(prev.Origin) ||
		origin.Subset(prev.Origin) ||
		prev.Enclosure.Subset(origin)
}

// accept records the unique root proven in origin with Krawczyk image k.
//
// Against each recorded solution whose proving box meets k, k is refined
// until the two are shown to be the same root or k leaves that proving
// box. If neither happens the overlap is a conflict: an ErrOverlappingRoots
// violation is recorded, origin goes to the rest set (when collected) and
// nothing is added.
func (e *engine) accept(origin, k interval.Box, r [][]float64) {
	s := e.sols
	s.mu.Lock()
	defer s.mu.Unlock()

	image := k.Clone()
	v, idx := e.classify(origin, &k, r)
	switch v {
	case verdictDuplicate:
		e.stats.add(classDuplicate)
		e.log.Debug("duplicate root", slog.Int("of", idx), slog.String("box", origin.String()))

		return
	case verdictConflict:
		prev := s.sols[idx]
		err := fmt.Errorf("%w: %v overlaps %v", ErrOverlappingRoots, origin, prev.Origin)
		s.violations = append(s.violations, err)
		if e.opts.CollectRest {
			e.rest.add(origin)
		}
		e.stats.add(classConflict)
		e.log.Warn("unresolved overlap between proofs",
			slog.String("box", origin.String()),
			slog.String("recorded", prev.Origin.String()))

		return
	}

	sol := Solution{Enclosure: e.refine(k, r), Origin: origin, Image: image}
	s.sols = append(s.sols, sol)
	if e.metrics != nil {
		e.metrics.Solutions.Set(float64(len(s.sols)))
	}
	if e.opts.Verbosity >= 1 {
		e.log.Info("root proven",
			slog.Int("index", len(s.sols)-1),
			slog.String("enclosure", sol.Enclosure.String()))
	}
}

// classify compares the newcomer against every recorded solution. k may
// be tightened in place while resolving overlaps. Must hold s.mu.
func (e *engine) classify(origin interval.Box, k *interval.Box, r [][]float64) (verdict, int) {
	for idx := range e.sols.sols {
		prev := &e.sols.sols[idx]
		if !k.Intersects(prev.Origin) {
			continue
		}
		if sameRoot(origin, *k, prev) {
			return verdictDuplicate, idx
		}

		resolved := false
		for it := 0; it < e.opts.MaxRefine; it++ {
			next, ok := e.refineStep(*k, r)
			if !ok {
				break
			}
			stalled := next.MaxWidth() >= k.MaxWidth()
			*k = next
			if sameRoot(origin, *k, prev) {
				return verdictDuplicate, idx
			}
			if !k.Intersects(prev.Origin) {
				resolved = true
				e.log.Debug("distinct roots in overlapping proving boxes",
					slog.String("box", origin.String()),
					slog.String("recorded", prev.Origin.String()))

				break
			}
			if stalled {
				break
			}
		}
		if !resolved {
			return verdictConflict, idx
		}
	}

	return verdictNew, -1
}

func (s *solutionSet) snapshot() ([]Solution, []error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sols := make([]Solution, len(s.sols))
	copy(sols, s.sols)
	errs := make([]error, len(s.violations))
	copy(errs, s.violations)
	sortSolutions(sols)

	return sols, errs
}
