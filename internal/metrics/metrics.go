// Package metrics exposes pool activity as Prometheus series.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/passforge/passforge/pool"
)

// Collector feeds pool hook events into Prometheus metrics. Wire it with
// pool.WithOnTaskEnd and pool.WithOnRetry, and register it against the
// pool's Stats for gauge readings.
type Collector struct {
	registry *prometheus.Registry

	tasksCompleted *prometheus.CounterVec
	taskErrors     *prometheus.CounterVec
	taskRetries    *prometheus.CounterVec
	taskDuration   *prometheus.HistogramVec
}

// NewCollector builds a Collector whose gauges read from stats.
func NewCollector(stats func() pool.StatsSnapshot) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		tasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "passforge",
			Name:      "tasks_completed_total",
			Help:      "Tasks that reached a terminal state, by action.",
		}, []string{"action"}),
		taskErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "passforge",
			Name:      "task_errors_total",
			Help:      "Tasks that finished with an error, by action.",
		}, []string{"action"}),
		taskRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "passforge",
			Name:      "task_retries_total",
			Help:      "Retry attempts, by action.",
		}, []string{"action"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "passforge",
			Name:      "task_duration_seconds",
			Help:      "Wall time from dispatch to completion, by action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}

	c.registry.MustRegister(c.tasksCompleted, c.taskErrors, c.taskRetries, c.taskDuration)

	gauges := []struct {
		name string
		help string
		read func(pool.StatsSnapshot) float64
	}{
		{"pool_size", "Configured number of execution contexts.",
			func(s pool.StatsSnapshot) float64 { return float64(s.PoolSize) }},
		{"active_contexts", "Contexts currently running a task.",
			func(s pool.StatsSnapshot) float64 { return float64(s.ActiveContexts) }},
		{"faulted_contexts", "Contexts retired after a fault.",
			func(s pool.StatsSnapshot) float64 { return float64(s.FaultedContexts) }},
		{"queue_length", "Tasks waiting for an idle context.",
			func(s pool.StatsSnapshot) float64 { return float64(s.QueueLength) }},
		{"inflight_tasks", "Tasks dispatched but not yet completed.",
			func(s pool.StatsSnapshot) float64 { return float64(s.InFlightCount) }},
		{"passwords_generated_total", "Items produced by completed tasks.",
			func(s pool.StatsSnapshot) float64 { return float64(s.TotalItemsGenerated) }},
		{"late_responses_total", "Responses discarded after timeout or retry.",
			func(s pool.StatsSnapshot) float64 { return float64(s.LateResponses) }},
	}
	for _, g := range gauges {
		read := g.read
		c.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "passforge",
			Name:      g.name,
			Help:      g.help,
		}, func() float64 { return read(stats()) }))
	}

	return c
}

// OnTaskEnd matches the pool.WithOnTaskEnd hook signature.
func (c *Collector) OnTaskEnd(action pool.Action, d time.Duration, err error) {
	labels := prometheus.Labels{"action": string(action)}
	c.tasksCompleted.With(labels).Inc()
	c.taskDuration.With(labels).Observe(d.Seconds())
	if err != nil {
		c.taskErrors.With(labels).Inc()
	}
}

// OnRetry matches the pool.WithOnRetry hook signature.
func (c *Collector) OnRetry(action pool.Action, attempt int, err error) {
	c.taskRetries.With(prometheus.Labels{"action": string(action)}).Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving metrics on addr.
func (c *Collector) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return http.ListenAndServe(addr, mux)
}
