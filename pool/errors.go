package pool

import "errors"

var (
	// ErrPoolTerminated is returned for any operation attempted on or after
	// Terminate, and resolves every task that was queued or in flight when
	// termination began.
	ErrPoolTerminated = errors.New("pool terminated")

	// ErrTaskTimeout resolves a task whose execution context produced no
	// response within the configured task timeout. Timeouts are final and
	// never retried.
	ErrTaskTimeout = errors.New("task timed out")

	// ErrContextStartup is returned by Initialize when any execution context
	// fails to become ready. No task is ever dispatched to a pool that failed
	// to initialize.
	ErrContextStartup = errors.New("execution context failed to start")

	// ErrContextFault resolves every task assigned to an execution context
	// that reported an unsolicited failure (for example a panic in its
	// handler). The faulted context is not respawned.
	ErrContextFault = errors.New("execution context fault")
)
