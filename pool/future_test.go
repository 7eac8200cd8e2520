package pool_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/passforge/passforge/pool"
)

func TestFuture(t *testing.T) {
	t.Run("is not ready while the task runs", func(t *testing.T) {
		release := make(chan struct{})
		factory := func(contextID int) (pool.Handler, error) {
			return pool.HandlerFunc(func(ctx context.Context, req pool.Request, report pool.ReportFunc) (any, error) {
				<-release
				return "done", nil
			}), nil
		}

		p, err := pool.New(pool.WithPoolSize(1), pool.WithHandlerFactory(factory))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer p.Terminate()

		f, err := p.Submit(actionEcho, nil)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if f.IsReady() {
			t.Error("future ready before the handler returned")
		}

		close(release)
		if v, err := f.GetWithTimeout(2 * time.Second); err != nil || v != "done" {
			t.Fatalf("got (%v, %v), want (done, nil)", v, err)
		}
		if !f.IsReady() {
			t.Error("future not ready after Get")
		}
	})

	t.Run("repeated reads observe the same resolution", func(t *testing.T) {
		p := newEchoPool(t, pool.WithPoolSize(1))

		f, err := p.Submit(actionEcho, "stable")
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if v, err := f.GetWithTimeout(2 * time.Second); err != nil || v != "stable" {
				t.Fatalf("read %d: got (%v, %v), want (stable, nil)", i, v, err)
			}
		}
	})

	t.Run("a cancelled wait does not resolve the future", func(t *testing.T) {
		release := make(chan struct{})
		factory := func(contextID int) (pool.Handler, error) {
			return pool.HandlerFunc(func(ctx context.Context, req pool.Request, report pool.ReportFunc) (any, error) {
				<-release
				return "eventually", nil
			}), nil
		}

		p, err := pool.New(pool.WithPoolSize(1), pool.WithHandlerFactory(factory))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer p.Terminate()

		f, err := p.Submit(actionEcho, nil)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if _, err := f.GetWithContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("error = %v, want DeadlineExceeded", err)
		}

		// The task kept running; its real outcome is still observable.
		close(release)
		if v, err := f.GetWithTimeout(2 * time.Second); err != nil || v != "eventually" {
			t.Fatalf("got (%v, %v), want (eventually, nil)", v, err)
		}
	})
}
