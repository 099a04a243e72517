// SPDX-License-Identifier: MIT

package solver

import "sync/atomic"

// class is the final classification of a processed box, used for counting.
type class uint8

const (
	classNonExistent class = iota
	classExistent
	classInconclusive
	classGaveUp
	classDuplicate
	classConflict
	numClasses
)

var classLabels = [numClasses]string{
	"nonexistent", "existent", "inconclusive", "giveup", "duplicate", "conflict",
}

func (c class) String() string { return classLabels[c] }

// classOf maps the terminal outcome of the pipeline to a counting class.
func classOf(o outcome) class {
	switch o {
	case outcomeEmpty:
		return classNonExistent
	case outcomeProven:
		return classExistent
	case outcomeAbandoned:
		return classGaveUp
	default:
		return classInconclusive
	}
}

// counters are the shared work counters; every field is updated atomically.
type counters struct {
	processed atomic.Int64
	byClass   [numClasses]atomic.Int64
	metrics   *Metrics
}

func (c *counters) add(k class) {
	c.byClass[k].Add(1)
	if c.metrics != nil {
		c.metrics.Boxes.WithLabelValues(k.String()).Inc()
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Processed:    c.processed.Load(),
		Inconclusive: c.byClass[classInconclusive].Load(),
		NonExistent:  c.byClass[classNonExistent].Load(),
		Existent:     c.byClass[classExistent].Load(),
		Duplicates:   c.byClass[classDuplicate].Load(),
		GaveUp:       c.byClass[classGaveUp].Load(),
		Conflicts:    c.byClass[classConflict].Load(),
	}
}
