package pool

import "time"

const unassigned = -1

// task is the coordinator's descriptor for one submitted unit of work. A
// task is present in at most one of the queue and the in-flight map at any
// instant, and is removed from both on resolution.
type task struct {
	id         int64
	action     Action
	payload    any
	retries    int
	assignedTo int // slot id, unassigned while queued
	future     *Future[any]
	onProgress ProgressFunc
	dispatched time.Time
	timer      *time.Timer
}

func (t *task) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// taskQueue is a FIFO queue of pending tasks. pushFront exists solely for
// the retry policy, which reinserts a failed task at the head so it is the
// next task dispatched.
type taskQueue struct {
	items []*task
}

func (q *taskQueue) len() int {
	return len(q.items)
}

func (q *taskQueue) pushBack(t *task) {
	q.items = append(q.items, t)
}

func (q *taskQueue) pushFront(t *task) {
	q.items = append([]*task{t}, q.items...)
}

func (q *taskQueue) popFront() *task {
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

// drain empties the queue and returns the removed tasks in order.
func (q *taskQueue) drain() []*task {
	items := q.items
	q.items = nil
	return items
}
