package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool is the coordinator for a fixed-size set of execution contexts. It
// owns the task queue, the slot table, and the in-flight map; execution
// contexts own none of this state and talk to the coordinator only through
// messages.
//
// All coordinator state is guarded by a single mutex, so enqueue, dispatch,
// completion, retry, and termination are atomic with respect to each other.
// None of the coordinator's operations block: dispatch, timeout arming, and
// completion handling are fire-and-continue.
//
// Lifecycle: created uninitialized → Initialize (explicit or lazy on first
// Submit) → accepting submissions → Terminate, which is idempotent and
// irreversible.
type Pool struct {
	conf *poolConfig

	mu          sync.Mutex
	initialized bool
	terminated  bool
	nextID      int64
	queue       taskQueue
	slots       []*slot
	inflight    map[int64]*task
	stats       stats

	redispatchArmed bool
	redispatchTimer *time.Timer

	out        chan message
	quit       chan struct{}
	loopDone   chan struct{}
	lifeCtx    context.Context
	lifeCancel context.CancelFunc
}

// New creates an uninitialized pool. A handler factory is required; all
// other options have defaults.
//
// Example:
//
//	p, err := pool.New(
//	    pool.WithPoolSize(4),
//	    pool.WithTaskTimeout(10*time.Second),
//	    pool.WithHandlerFactory(factory),
//	)
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.factory == nil {
		return nil, errors.New("pool: handler factory is required")
	}

	return &Pool{
		conf:     cfg,
		inflight: make(map[int64]*task),
	}, nil
}

// Size returns the configured number of execution contexts.
func (p *Pool) Size() int {
	return p.conf.size
}

// Initialize spawns all execution contexts concurrently and waits for every
// one to signal readiness. It is idempotent while the pool is healthy: a
// second call on an initialized pool is a no-op.
//
// If any context fails to start, Initialize returns an error wrapping
// ErrContextStartup, the pool becomes unusable, and no task is ever
// dispatched.
func (p *Pool) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminated {
		return ErrPoolTerminated
	}
	return p.initializeLocked()
}

func (p *Pool) initializeLocked() error {
	if p.initialized {
		return nil
	}

	n := p.conf.size
	p.out = make(chan message, n*slotMailboxSize+16)
	p.quit = make(chan struct{})
	p.lifeCtx, p.lifeCancel = context.WithCancel(context.Background())

	p.slots = make([]*slot, n)
	for i := range p.slots {
		p.slots[i] = &slot{
			id:      i,
			current: unassigned,
			reqCh:   make(chan Request, slotMailboxSize),
		}
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			h, err := p.conf.factory(i)
			if err != nil {
				return fmt.Errorf("context %d: %w", i, err)
			}

			c := &executionContext{
				id:      i,
				handler: h,
				reqCh:   p.slots[i].reqCh,
				out:     p.out,
				quit:    p.quit,
				ctx:     p.lifeCtx,
				logger:  p.conf.logger,
			}

			ready := make(chan struct{})
			go c.run(ready)
			<-ready
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Retire anything that did start; the pool is unusable.
		close(p.quit)
		p.lifeCancel()
		p.terminated = true
		return fmt.Errorf("%w: %v", ErrContextStartup, err)
	}

	p.loopDone = make(chan struct{})
	go p.loop()
	p.initialized = true

	p.conf.logger.Info("pool initialized",
		zap.Int("contexts", n),
		zap.Duration("task_timeout", p.conf.taskTimeout),
		zap.Int("max_retries", p.conf.maxRetries))
	return nil
}

// SubmitOption configures one submission.
type SubmitOption func(*task)

// WithProgress attaches a progress callback to the submitted task. It is
// invoked from the coordinator's message loop, zero or more times, always
// before the task resolves.
func WithProgress(fn ProgressFunc) SubmitOption {
	return func(t *task) {
		t.onProgress = fn
	}
}

// Submit enqueues one task and immediately attempts dispatch. It returns a
// pending-result handle the caller can wait on; Submit itself never blocks
// on task execution.
//
// Submitting to an uninitialized pool initializes it first, exactly once.
// Submitting to a terminated pool fails with ErrPoolTerminated.
func (p *Pool) Submit(action Action, payload any, opts ...SubmitOption) (*Future[any], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminated {
		return nil, ErrPoolTerminated
	}
	if !p.initialized {
		if err := p.initializeLocked(); err != nil {
			return nil, err
		}
	}

	p.nextID++
	t := &task{
		id:         p.nextID,
		action:     action,
		payload:    payload,
		assignedTo: unassigned,
		future:     newFuture[any](),
	}
	t.future.taskID = t.id
	for _, opt := range opts {
		opt(t)
	}

	p.queue.pushBack(t)
	p.stats.tasksQueued++
	p.dispatchLocked()
	return t.future, nil
}

// dispatchLocked matches queued tasks to idle slots until the queue is empty
// or no slot is idle. Tasks leave the queue before assignment and are
// dispatched in strict FIFO order; completion order across contexts is
// unordered. Must be called with p.mu held.
func (p *Pool) dispatchLocked() {
	for p.queue.len() > 0 {
		s := p.idleSlotLocked()
		if s == nil {
			return
		}

		if lim := p.conf.rateLimiter; lim != nil {
			res := lim.Reserve()
			if d := res.Delay(); d > 0 {
				res.Cancel()
				p.scheduleRedispatchLocked(d)
				return
			}
		}

		t := p.queue.popFront()
		req := Request{ID: t.id, Action: t.action, Payload: t.payload}

		select {
		case s.reqCh <- req:
		default:
			// Mailbox saturated by repeatedly timed-out work; the context is
			// wedged and gets retired rather than fed more tasks.
			s.faulted = true
			p.queue.pushFront(t)
			p.conf.logger.Warn("retiring wedged execution context", zap.Int("context", s.id))
			continue
		}

		t.assignedTo = s.id
		t.dispatched = time.Now()
		s.busy = true
		s.current = t.id
		p.inflight[t.id] = t

		id := t.id
		t.timer = time.AfterFunc(p.conf.taskTimeout, func() { p.expire(id) })
	}
}

// idleSlotLocked returns any idle, healthy slot. Selection order among idle
// slots is unspecified; first-found is fine.
func (p *Pool) idleSlotLocked() *slot {
	for _, s := range p.slots {
		if !s.busy && !s.faulted {
			return s
		}
	}
	return nil
}

func (p *Pool) scheduleRedispatchLocked(d time.Duration) {
	if p.redispatchArmed {
		return
	}
	p.redispatchArmed = true
	p.redispatchTimer = time.AfterFunc(d, func() {
		p.mu.Lock()
		p.redispatchArmed = false
		if !p.terminated {
			p.dispatchLocked()
		}
		p.mu.Unlock()
	})
}

// loop is the coordinator's message loop: the single consumer of context
// responses, progress notifications, and fault reports.
func (p *Pool) loop() {
	defer close(p.loopDone)
	for {
		select {
		case <-p.quit:
			return
		case m := <-p.out:
			switch msg := m.(type) {
			case resultMsg:
				p.handleResult(msg)
			case progressMsg:
				p.handleProgress(msg)
			case faultMsg:
				p.handleFault(msg)
			}
		}
	}
}

func (p *Pool) handleResult(m resultMsg) {
	var after []func()

	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		return
	}

	t, ok := p.inflight[m.taskID]
	if !ok || t.assignedTo != m.ctxID {
		// Late response for a task that already timed out or was resolved on
		// another context; discard it.
		p.stats.lateResponses++
		p.mu.Unlock()
		return
	}

	t.stopTimer()
	s := p.slots[m.ctxID]
	d := time.Since(t.dispatched)

	if m.err != nil && t.retries < p.conf.maxRetries {
		// Immediate-priority retry: head of the queue, not the tail.
		t.retries++
		delete(p.inflight, t.id)
		t.assignedTo = unassigned
		if s.current == t.id {
			s.free()
		}
		p.queue.pushFront(t)
		p.stats.retries++

		if hook := p.conf.onRetry; hook != nil {
			attempt := t.retries
			after = append(after, func() { hook(t.action, attempt, m.err) })
		}

		p.dispatchLocked()
		p.mu.Unlock()
		for _, fn := range after {
			fn()
		}
		return
	}

	delete(p.inflight, t.id)
	if s.current == t.id {
		s.free()
	}

	var err error
	if m.err != nil {
		p.stats.errors++
		err = fmt.Errorf("task %d failed after %d attempts: %w", t.id, t.retries+1, m.err)
		t.future.resolve(nil, err)
	} else {
		s.tasksCompleted++
		p.stats.tasksCompleted++
		p.stats.totalTaskDuration += d
		p.stats.totalItemsGenerated += itemCount(m.value)
		t.future.resolve(m.value, nil)
	}

	if hook := p.conf.onTaskEnd; hook != nil {
		after = append(after, func() { hook(t.action, d, err) })
	}

	p.dispatchLocked()
	p.mu.Unlock()
	for _, fn := range after {
		fn()
	}
}

func (p *Pool) handleProgress(m progressMsg) {
	p.mu.Lock()
	var fn ProgressFunc
	var pr Progress
	if t, ok := p.inflight[m.taskID]; ok && t.onProgress != nil && t.assignedTo == m.ctxID {
		fn = t.onProgress
		pr = Progress{Completed: m.completed, Total: m.total}
		if m.total > 0 {
			pr.Percentage = float64(m.completed) / float64(m.total) * 100
		}
	}
	p.mu.Unlock()

	// User callback runs outside the lock but still on the message loop, so
	// progress events for one task stay ordered.
	if fn != nil {
		fn(pr)
	}
}

// handleFault fails every task assigned to the faulted context and retires
// its slot. The context is not respawned; effective capacity degrades.
func (p *Pool) handleFault(m faultMsg) {
	var after []func()

	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		return
	}

	s := p.slots[m.ctxID]
	s.faulted = true
	s.free()

	for id, t := range p.inflight {
		if t.assignedTo != m.ctxID {
			continue
		}
		t.stopTimer()
		delete(p.inflight, id)
		p.stats.errors++

		err := fmt.Errorf("task %d: %w: %v", t.id, ErrContextFault, m.err)
		t.future.resolve(nil, err)

		if hook := p.conf.onTaskEnd; hook != nil {
			d := time.Since(t.dispatched)
			action := t.action
			after = append(after, func() { hook(action, d, err) })
		}
	}

	p.conf.logger.Warn("execution context retired after fault",
		zap.Int("context", m.ctxID),
		zap.Error(m.err))

	p.dispatchLocked()
	p.mu.Unlock()
	for _, fn := range after {
		fn()
	}
}

// expire is the per-task timeout callback. Timeouts are final: the task is
// failed, its slot freed, and the dispatch loop re-run. A response arriving
// later for the same task id is discarded as late.
func (p *Pool) expire(taskID int64) {
	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		return
	}

	t, ok := p.inflight[taskID]
	if !ok {
		p.mu.Unlock()
		return
	}

	delete(p.inflight, taskID)
	t.timer = nil
	if s := p.slots[t.assignedTo]; s.current == taskID {
		s.free()
	}
	p.stats.errors++

	err := fmt.Errorf("task %d: %w after %s", t.id, ErrTaskTimeout, p.conf.taskTimeout)
	t.future.resolve(nil, err)

	hook := p.conf.onTaskEnd
	d := time.Since(t.dispatched)
	action := t.action

	p.dispatchLocked()
	p.mu.Unlock()

	if hook != nil {
		hook(action, d, err)
	}
}

// Terminate shuts the pool down. The first call rejects every queued task,
// then every in-flight task (cancelling its timeout), with ErrPoolTerminated,
// destroys all execution contexts, and flips the irreversible terminated
// flag. All pending-result handles are rejected synchronously before
// Terminate returns. Subsequent calls are no-ops.
func (p *Pool) Terminate() {
	var after []func()

	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		return
	}
	p.terminated = true

	if p.redispatchTimer != nil {
		p.redispatchTimer.Stop()
	}

	rejected := 0
	reject := func(t *task) {
		t.stopTimer()
		p.stats.errors++
		err := fmt.Errorf("task %d: %w", t.id, ErrPoolTerminated)
		t.future.resolve(nil, err)
		rejected++

		if hook := p.conf.onTaskEnd; hook != nil {
			action := t.action
			after = append(after, func() { hook(action, 0, err) })
		}
	}

	// Queued first, then in-flight; every task reaches exactly one terminal
	// resolution.
	for _, t := range p.queue.drain() {
		reject(t)
	}
	for id, t := range p.inflight {
		delete(p.inflight, id)
		reject(t)
	}

	initialized := p.initialized
	if initialized {
		close(p.quit)
		p.lifeCancel()
	}

	p.conf.logger.Info("pool terminated", zap.Int("rejected_tasks", rejected))
	p.mu.Unlock()

	for _, fn := range after {
		fn()
	}
	if initialized {
		<-p.loopDone
	}
}

// itemCount extracts how many generated items a successful result carries,
// for the TotalItemsGenerated counter.
func itemCount(v any) uint64 {
	switch r := v.(type) {
	case string:
		return 1
	case []string:
		return uint64(len(r))
	default:
		return 0
	}
}
