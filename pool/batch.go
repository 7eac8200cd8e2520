package pool

import (
	"fmt"
	"sync"
)

// BatchOptions configures SubmitBatch.
type BatchOptions struct {
	// OnProgress receives a single running total across all sub-batches.
	OnProgress ProgressFunc

	// BatchSize is the number of items per sub-batch. Zero means
	// ceil(len(items) / pool size), spreading the batch across every
	// context.
	BatchSize int
}

// SubmitBatch partitions items into consecutive, non-overlapping sub-batches
// preserving input order, submits one task per sub-batch so they run
// concurrently across idle contexts, and returns a single pending result
// that resolves once every sub-batch has resolved.
//
// The aggregated result concatenates sub-batch results in sub-batch index
// order, never completion order, so the output matches the input
// element-for-element. An empty items slice resolves immediately without
// dispatching any task.
//
// Each sub-batch task's handler is expected to return []R; any sub-batch
// failure fails the whole batch with the first error observed in index
// order.
func SubmitBatch[T, R any](p *Pool, action Action, items []T, opts *BatchOptions) (*Future[[]R], error) {
	agg := newFuture[[]R]()

	if len(items) == 0 {
		agg.resolve([]R{}, nil)
		return agg, nil
	}

	var onProgress ProgressFunc
	batchSize := 0
	if opts != nil {
		onProgress = opts.OnProgress
		batchSize = opts.BatchSize
	}
	if batchSize <= 0 {
		batchSize = (len(items) + p.Size() - 1) / p.Size()
	}

	subs := splitBatch(items, batchSize)
	job := &batchJob{
		total:      len(items),
		completed:  make([]int, len(subs)),
		onProgress: onProgress,
	}

	futures := make([]*Future[any], len(subs))
	for i, sub := range subs {
		var submitOpts []SubmitOption
		if onProgress != nil {
			idx := i
			submitOpts = append(submitOpts, WithProgress(func(pr Progress) {
				job.report(idx, pr.Completed)
			}))
		}

		f, err := p.Submit(action, sub, submitOpts...)
		if err != nil {
			// Sub-batches already submitted are rejected by the pool's own
			// termination path.
			return nil, err
		}
		futures[i] = f
	}

	go func() {
		results := make([][]R, len(subs))
		var firstErr error

		for i, f := range futures {
			v, err := f.Get()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			rs, ok := v.([]R)
			if !ok {
				if firstErr == nil {
					firstErr = fmt.Errorf("batch task %d: unexpected result type %T", f.TaskID(), v)
				}
				continue
			}

			results[i] = rs
			job.report(i, len(subs[i]))
		}

		if firstErr != nil {
			agg.resolve(nil, firstErr)
			return
		}

		out := make([]R, 0, len(items))
		for _, rs := range results {
			out = append(out, rs...)
		}
		agg.resolve(out, nil)
	}()

	return agg, nil
}

// batchJob is the ephemeral aggregate tracking per-sub-batch completion
// counts so progress can be reported as one running total.
type batchJob struct {
	mu         sync.Mutex
	total      int
	completed  []int
	reported   int
	onProgress ProgressFunc
}

// report records that sub-batch idx has completed at least n items and
// invokes the progress callback when the running total advances. Counts
// never regress, so late or duplicate notifications are absorbed.
func (j *batchJob) report(idx, n int) {
	if j.onProgress == nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if n > j.completed[idx] {
		j.completed[idx] = n
	}

	sum := 0
	for _, c := range j.completed {
		sum += c
	}
	if sum <= j.reported {
		return
	}
	j.reported = sum

	pr := Progress{Completed: sum, Total: j.total}
	if j.total > 0 {
		pr.Percentage = float64(sum) / float64(j.total) * 100
	}
	j.onProgress(pr)
}

// splitBatch slices items into consecutive chunks of at most size elements.
func splitBatch[T any](items []T, size int) [][]T {
	var subs [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		subs = append(subs, items[start:end:end])
	}
	return subs
}
