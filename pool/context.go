package pool

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// slotMailboxSize bounds the requests a context can have buffered. More than
// one request is only ever outstanding after a timeout freed the slot while
// the context was still executing the timed-out task.
const slotMailboxSize = 8

// slot is the coordinator's bookkeeping record for one execution context.
// Only the coordinator reads or writes a slot, always under the pool mutex.
type slot struct {
	id             int
	busy           bool
	faulted        bool
	tasksCompleted int
	current        int64 // task id in flight, unassigned if idle
	reqCh          chan Request
}

func (s *slot) free() {
	s.busy = false
	s.current = unassigned
}

// message is the coordinator-bound half of the context message contract.
type message interface {
	contextID() int
}

// resultMsg resolves a dispatched task: either success with a value or an
// execution failure with an error.
type resultMsg struct {
	ctxID  int
	taskID int64
	value  any
	err    error
}

func (m resultMsg) contextID() int { return m.ctxID }

// progressMsg is a notification that does not resolve the task.
type progressMsg struct {
	ctxID     int
	taskID    int64
	completed int
	total     int
}

func (m progressMsg) contextID() int { return m.ctxID }

// faultMsg reports an unsolicited context failure, independent of any
// specific task response. The context stops accepting requests after
// sending it.
type faultMsg struct {
	ctxID int
	err   error
}

func (m faultMsg) contextID() int { return m.ctxID }

// executionContext is one isolated worker. It owns its Handler, receives
// requests on reqCh, and communicates with the coordinator exclusively
// through messages on out. It holds no pool state.
type executionContext struct {
	id      int
	handler Handler
	reqCh   <-chan Request
	out     chan<- message
	quit    <-chan struct{}
	ctx     context.Context
	logger  *zap.Logger
}

// run is the context's main loop. It signals readiness once at startup by
// closing ready, then serves requests until the pool terminates or the
// handler faults.
func (c *executionContext) run(ready chan<- struct{}) {
	close(ready)

	for {
		select {
		case <-c.quit:
			return
		case req := <-c.reqCh:
			value, err, fault := c.execute(req)
			if fault != nil {
				c.logger.Warn("execution context fault",
					zap.Int("context", c.id),
					zap.Error(fault))
				c.send(faultMsg{ctxID: c.id, err: fault})
				return
			}
			c.send(resultMsg{ctxID: c.id, taskID: req.ID, value: value, err: err})
		}
	}
}

// execute runs one request through the handler with panic recovery. A panic
// is a fault, not an execution failure: the handler's state can no longer be
// trusted, so the context retires itself.
func (c *executionContext) execute(req Request) (value any, err error, fault error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fault = fmt.Errorf("handler panic on task %d: %v\nstack trace:\n%s", req.ID, r, buf[:n])
		}
	}()

	report := func(completed, total int) {
		c.send(progressMsg{ctxID: c.id, taskID: req.ID, completed: completed, total: total})
	}

	value, err = c.handler.Handle(c.ctx, req, report)
	return value, err, nil
}

func (c *executionContext) send(m message) {
	select {
	case c.out <- m:
	case <-c.quit:
	}
}
