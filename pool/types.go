package pool

import "context"

// Action identifies the operation a task asks an execution context to
// perform. The action set is fixed at compile time.
type Action string

const (
	ActionGenerate       Action = "generate"
	ActionGenerateBatch  Action = "generate_batch"
	ActionValidateConfig Action = "validate_config"
	ActionEntropy        Action = "calculate_entropy"
	ActionSupportedTypes Action = "get_supported_types"
)

// Request is the message the coordinator transmits to an execution context
// when dispatching a task.
type Request struct {
	ID      int64
	Action  Action
	Payload any
}

// Progress describes the running completion state of a batch task.
type Progress struct {
	Completed  int
	Total      int
	Percentage float64
}

// ProgressFunc receives progress notifications. It is invoked zero or more
// times before a task's pending result resolves, never after.
type ProgressFunc func(Progress)

// ReportFunc lets a handler emit a progress notification for the request it
// is currently executing.
type ReportFunc func(completed, total int)

// Handler is the opaque capability each execution context executes requests
// against. Implementations must be safe to call sequentially from a single
// goroutine; the pool never shares one Handler between contexts.
//
// A returned error is an execution failure, subject to the pool's retry
// policy. A panic is treated as a context fault: the context stops accepting
// work and every task assigned to it fails.
type Handler interface {
	Handle(ctx context.Context, req Request, report ReportFunc) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request, report ReportFunc) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, req Request, report ReportFunc) (any, error) {
	return f(ctx, req, report)
}

// HandlerFactory creates the Handler for one execution context. It is called
// once per context during initialization; returning an error aborts
// initialization with ErrContextStartup.
type HandlerFactory func(contextID int) (Handler, error)
