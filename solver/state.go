// SPDX-License-Identifier: MIT

package solver

// stage is a step of the per-box pipeline.
type stage uint8

const (
	stageEvaluating  stage = iota // non-existence tests, Jacobian bundle
	stageContracting              // TRIM
	stageTesting                  // Krawczyk
	stageSplitting                // bisection or give-up
	stageDone
)

var stageNames = [...]string{"evaluating", "contracting", "testing", "splitting", "done"}

func (s stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}

	return "unknown"
}

// outcome is what a stage reports back to the driver loop.
type outcome uint8

const (
	outcomeUndecided outcome = iota // no verdict; move on to the next stage
	outcomeEmpty                    // proven root-free
	outcomeFailed                   // stage could not run; go split
	outcomeChanged                  // box contracted enough to re-evaluate
	outcomeRetry                    // Krawczyk shrank the box; re-evaluate
	outcomeProven                   // unique root certified
	outcomeForked                   // TRIM produced two children
	outcomeSplit                    // bisected into two children
	outcomeAbandoned                // given up
)

// transition is the pure edge function of the pipeline. The driver never
// consults anything but the current stage and the last outcome.
func transition(s stage, o outcome) stage {
	switch o {
	case outcomeEmpty, outcomeProven, outcomeForked, outcomeSplit, outcomeAbandoned:
		return stageDone
	case outcomeFailed:
		return stageSplitting
	case outcomeChanged, outcomeRetry:
		return stageEvaluating
	}
	switch s {
	case stageEvaluating:
		return stageContracting
	case stageContracting:
		return stageTesting
	case stageTesting:
		return stageSplitting
	default:
		return stageDone
	}
}
