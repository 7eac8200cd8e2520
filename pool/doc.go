// Package pool provides a bounded parallel task pool that distributes
// password-generation requests across a fixed set of isolated execution
// contexts.
//
// The primary type is Pool, a coordinator that owns a FIFO task queue, a
// slot table tracking each execution context's busy/idle state, and an
// in-flight map correlating dispatched tasks with their eventual responses.
// Each execution context runs in its own goroutine, shares no state with the
// coordinator, and communicates exclusively through request and response
// messages.
//
// # Basic Usage
//
//	p, err := pool.New(
//	    pool.WithPoolSize(4),
//	    pool.WithHandlerFactory(factory),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Terminate()
//
//	future, err := p.Submit(pool.ActionGenerate, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := future.Get()
//
// Submitting to an uninitialized pool initializes it lazily, exactly once.
// Initialize may also be called explicitly to surface context-startup
// failures early.
//
// # Retry and Timeout
//
// Tasks that an execution context reports as failed are retried up to
// maxRetries times (default 3) by reinserting them at the head of the queue,
// so a retry is always the next task dispatched. A task with no response
// within the configured timeout (default 30s) resolves as a timeout error
// and is not retried. Every submitted task reaches exactly one terminal
// resolution: success, timeout, retry exhaustion, context fault, or pool
// termination.
//
// # Batches
//
// SubmitBatch partitions a bulk request into consecutive sub-batches that
// run concurrently across contexts while preserving input order in the
// aggregated result. Progress callbacks report a single running total across
// all sub-batches.
package pool
