// SPDX-License-Identifier: MIT

package solver

import (
	"sync"

	"github.com/katalvlaran/rootbox/interval"
)

// workQueue is a LIFO box queue shared by all workers.
//
// outstanding counts boxes popped but not yet reported back through done.
// The search is over when the queue is empty and nothing is outstanding;
// both are checked under the same lock, so a worker about to push children
// can never be mistaken for an idle one.
type workQueue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	boxes       []interval.Box
	outstanding int
	closed      bool
	onDepth     func(int)
}

func newWorkQueue(onDepth func(int)) *workQueue {
	q := &workQueue{onDepth: onDepth}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// push adds boxes without marking any work finished.
func (q *workQueue) push(bs ...interval.Box) {
	q.mu.Lock()
	q.boxes = append(q.boxes, bs...)
	q.depthLocked()
	q.mu.Unlock()
	q.cond.Broadcast()
}

// pop blocks until a box is available, returning ok=false once the search
// has terminated or the queue was closed.
func (q *workQueue) pop() (interval.Box, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.boxes) == 0 && q.outstanding > 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed || len(q.boxes) == 0 {
		return nil, false
	}
	last := len(q.boxes) - 1
	b := q.boxes[last]
	q.boxes[last] = nil
	q.boxes = q.boxes[:last]
	q.outstanding++
	q.depthLocked()

	return b, true
}

// done reports a popped box as finished and enqueues its children.
func (q *workQueue) done(children []interval.Box) {
	q.mu.Lock()
	q.outstanding--
	q.boxes = append(q.boxes, children...)
	q.depthLocked()
	q.mu.Unlock()
	q.cond.Broadcast()
}

// close wakes every waiter and makes pop return false.
func (q *workQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// drain removes and returns the queued boxes.
func (q *workQueue) drain() []interval.Box {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.boxes
	q.boxes = nil
	q.depthLocked()

	return out
}

func (q *workQueue) depthLocked() {
	if q.onDepth != nil {
		q.onDepth(len(q.boxes))
	}
}
