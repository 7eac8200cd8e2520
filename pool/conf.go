package pool

import (
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxRetries is the number of retry attempts after the initial
	// execution of a task (total attempts = DefaultMaxRetries + 1).
	DefaultMaxRetries = 3

	// DefaultTaskTimeout is the per-task wall-clock timeout measured from
	// dispatch.
	DefaultTaskTimeout = 30 * time.Second
)

// Option is a functional option for configuring the pool.
type Option func(*poolConfig)

type poolConfig struct {
	size        int
	maxRetries  int
	taskTimeout time.Duration
	rateLimiter *rate.Limiter
	factory     HandlerFactory
	logger      *zap.Logger

	onTaskEnd func(Action, time.Duration, error)
	onRetry   func(Action, int, error)
}

func defaultConfig() *poolConfig {
	return &poolConfig{
		size:        runtime.GOMAXPROCS(0),
		maxRetries:  DefaultMaxRetries,
		taskTimeout: DefaultTaskTimeout,
		logger:      zap.NewNop(),
	}
}

// WithPoolSize sets the fixed number of execution contexts.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithPoolSize(size int) Option {
	return func(cfg *poolConfig) {
		if size > 0 {
			cfg.size = size
		}
	}
}

// WithMaxRetries sets how many times a task whose context reports failure is
// requeued before its pending result resolves as a failure. Zero disables
// retries.
func WithMaxRetries(n int) Option {
	return func(cfg *poolConfig) {
		if n >= 0 {
			cfg.maxRetries = n
		}
	}
}

// WithTaskTimeout sets the per-task wall-clock timeout, measured from
// dispatch. A task with no response within the timeout resolves as a timeout
// error and is not retried.
func WithTaskTimeout(d time.Duration) Option {
	return func(cfg *poolConfig) {
		if d > 0 {
			cfg.taskTimeout = d
		}
	}
}

// WithRateLimit throttles dispatch to tasksPerSecond with the given burst.
// The coordinator never blocks on the limiter; when throttled it parks the
// queue head and schedules a redispatch.
//
// Example:
//
//	WithRateLimit(100, 10) // dispatch at most 100 tasks/sec, burst of 10
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *poolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithHandlerFactory sets the factory that creates one Handler per execution
// context. Required.
func WithHandlerFactory(factory HandlerFactory) Option {
	return func(cfg *poolConfig) {
		cfg.factory = factory
	}
}

// WithLogger sets the pool's logger. The default is a no-op logger, so a
// pool embedded in a library stays silent unless told otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *poolConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithOnTaskEnd registers a hook invoked after every terminal task
// resolution with the task's action, its wall-clock duration since dispatch,
// and its error, if any. The hook runs outside the coordinator lock.
func WithOnTaskEnd(hook func(action Action, d time.Duration, err error)) Option {
	return func(cfg *poolConfig) {
		cfg.onTaskEnd = hook
	}
}

// WithOnRetry registers a hook invoked each time a failed task is requeued,
// with the attempt number just completed (1-based).
func WithOnRetry(hook func(action Action, attempt int, err error)) Option {
	return func(cfg *poolConfig) {
		cfg.onRetry = hook
	}
}
