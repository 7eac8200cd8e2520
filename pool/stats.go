package pool

import "time"

// stats holds the coordinator's aggregate counters. All fields are guarded
// by the pool mutex; the point-in-time gauges live in StatsSnapshot and are
// recomputed on read.
type stats struct {
	tasksCompleted      uint64
	tasksQueued         uint64
	totalItemsGenerated uint64
	errors              uint64
	retries             uint64
	lateResponses       uint64
	totalTaskDuration   time.Duration
}

// StatsSnapshot is a point-in-time view of pool activity. The counters are
// monotonic; the gauges reflect current queue and slot state at the moment
// Stats was called.
type StatsSnapshot struct {
	// Monotonic counters.
	TasksCompleted      uint64
	TasksQueued         uint64 // cumulative submissions
	TotalItemsGenerated uint64
	Errors              uint64
	Retries             uint64
	LateResponses       uint64

	// AverageTaskDuration is the mean wall-clock time from dispatch to
	// successful resolution, zero if no task has completed.
	AverageTaskDuration time.Duration

	// Point-in-time gauges.
	PoolSize        int
	ActiveContexts  int
	FaultedContexts int
	QueueLength     int
	InFlightCount   int
}

// Stats returns a snapshot of the pool's counters and gauges. It is
// synchronous and involves no message round-trip.
func (p *Pool) Stats() StatsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := StatsSnapshot{
		TasksCompleted:      p.stats.tasksCompleted,
		TasksQueued:         p.stats.tasksQueued,
		TotalItemsGenerated: p.stats.totalItemsGenerated,
		Errors:              p.stats.errors,
		Retries:             p.stats.retries,
		LateResponses:       p.stats.lateResponses,
		PoolSize:            p.conf.size,
		QueueLength:         p.queue.len(),
		InFlightCount:       len(p.inflight),
	}

	if p.stats.tasksCompleted > 0 {
		snap.AverageTaskDuration = p.stats.totalTaskDuration / time.Duration(p.stats.tasksCompleted)
	}

	for _, s := range p.slots {
		if s.busy {
			snap.ActiveContexts++
		}
		if s.faulted {
			snap.FaultedContexts++
		}
	}

	return snap
}
