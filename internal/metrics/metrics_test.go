package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passforge/passforge/pool"
)

func TestCollectorHooks(t *testing.T) {
	c := NewCollector(func() pool.StatsSnapshot {
		return pool.StatsSnapshot{PoolSize: 4, QueueLength: 2}
	})

	c.OnTaskEnd(pool.ActionGenerate, 10*time.Millisecond, nil)
	c.OnTaskEnd(pool.ActionGenerate, 20*time.Millisecond, errors.New("boom"))
	c.OnRetry(pool.ActionGenerate, 1, errors.New("transient"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.tasksCompleted.WithLabelValues("generate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.taskErrors.WithLabelValues("generate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.taskRetries.WithLabelValues("generate")))
}

func TestCollectorEndpoint(t *testing.T) {
	c := NewCollector(func() pool.StatsSnapshot {
		return pool.StatsSnapshot{PoolSize: 3, QueueLength: 7, TotalItemsGenerated: 42}
	})
	c.OnTaskEnd(pool.ActionGenerate, time.Millisecond, nil)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	body := buf.String()

	assert.Contains(t, body, "passforge_pool_size 3")
	assert.Contains(t, body, "passforge_queue_length 7")
	assert.Contains(t, body, "passforge_passwords_generated_total 42")
	assert.Contains(t, body, `passforge_tasks_completed_total{action="generate"} 1`)
}
