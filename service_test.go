package passforge_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/passforge/passforge"
	"github.com/passforge/passforge/generator"
	"github.com/passforge/passforge/pool"
)

func newService(t *testing.T, opts ...pool.Option) *passforge.Service {
	t.Helper()
	svc, err := passforge.New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(svc.Terminate)
	return svc
}

func TestGeneratePassword(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(2))
	ctx := context.Background()

	t.Run("random", func(t *testing.T) {
		pw, err := svc.GeneratePassword(ctx, generator.Default())
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if len(pw) != 16 {
			t.Errorf("len = %d, want 16", len(pw))
		}
	})

	t.Run("pin", func(t *testing.T) {
		cfg := generator.Config{Type: generator.TypePIN, Length: 6}
		pw, err := svc.GeneratePassword(ctx, cfg)
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if len(pw) != 6 {
			t.Errorf("len = %d, want 6", len(pw))
		}
	})

	t.Run("invalid config fails the task", func(t *testing.T) {
		cfg := generator.Config{Type: generator.TypeRandom, Length: 10}
		if _, err := svc.GeneratePassword(ctx, cfg); err == nil {
			t.Fatal("expected an error for an empty charset")
		}
	})
}

func TestGenerateMultiple(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(3))
	ctx := context.Background()

	t.Run("one password per config in order", func(t *testing.T) {
		cfgs := make([]generator.Config, 25)
		for i := range cfgs {
			if i%2 == 0 {
				cfgs[i] = generator.Config{Type: generator.TypePIN, Length: 4}
			} else {
				cfgs[i] = generator.Config{Type: generator.TypePIN, Length: 9}
			}
		}

		pws, err := svc.GenerateMultiple(ctx, cfgs, nil)
		if err != nil {
			t.Fatalf("GenerateMultiple failed: %v", err)
		}
		if len(pws) != len(cfgs) {
			t.Fatalf("got %d passwords, want %d", len(pws), len(cfgs))
		}
		// Alternating lengths prove results line up with their configs.
		for i, pw := range pws {
			want := 4
			if i%2 == 1 {
				want = 9
			}
			if len(pw) != want {
				t.Errorf("password %d: len = %d, want %d", i, len(pw), want)
			}
		}
	})

	t.Run("reports batch progress", func(t *testing.T) {
		cfgs := make([]generator.Config, 12)
		for i := range cfgs {
			cfgs[i] = generator.Default()
		}

		var mu sync.Mutex
		var final pool.Progress

		_, err := svc.GenerateMultiple(ctx, cfgs, &pool.BatchOptions{
			OnProgress: func(pr pool.Progress) {
				mu.Lock()
				final = pr
				mu.Unlock()
			},
		})
		if err != nil {
			t.Fatalf("GenerateMultiple failed: %v", err)
		}

		deadline := time.Now().Add(time.Second)
		for {
			mu.Lock()
			done := final.Completed == len(cfgs)
			mu.Unlock()
			if done {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("final progress = %+v, want Completed=%d", final, len(cfgs))
			}
			time.Sleep(5 * time.Millisecond)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		pws, err := svc.GenerateMultiple(ctx, nil, nil)
		if err != nil {
			t.Fatalf("GenerateMultiple failed: %v", err)
		}
		if len(pws) != 0 {
			t.Errorf("got %v, want empty", pws)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(1))
	ctx := context.Background()

	res, err := svc.ValidateConfig(ctx, generator.Default())
	if err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
	if !res.Valid {
		t.Errorf("default config invalid: %v", res.Errors)
	}

	res, err = svc.ValidateConfig(ctx, generator.Config{Type: "hex"})
	if err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
	if res.Valid {
		t.Error("unknown type reported valid")
	}
}

func TestCalculateEntropy(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(1))

	rep, err := svc.CalculateEntropy(context.Background(), generator.Default())
	if err != nil {
		t.Fatalf("CalculateEntropy failed: %v", err)
	}
	if rep.Bits <= 0 {
		t.Errorf("Bits = %v, want positive", rep.Bits)
	}
	if rep.Strength == "" {
		t.Error("empty strength")
	}
}

func TestSupportedTypes(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(1))

	types, err := svc.SupportedTypes(context.Background())
	if err != nil {
		t.Fatalf("SupportedTypes failed: %v", err)
	}
	want := []string{"random", "base64", "memorable", "pin"}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestServiceStats(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(2))
	ctx := context.Background()

	cfgs := make([]generator.Config, 10)
	for i := range cfgs {
		cfgs[i] = generator.Default()
	}
	if _, err := svc.GenerateMultiple(ctx, cfgs, nil); err != nil {
		t.Fatalf("GenerateMultiple failed: %v", err)
	}

	snap := svc.Stats()
	if snap.TotalItemsGenerated != 10 {
		t.Errorf("TotalItemsGenerated = %d, want 10", snap.TotalItemsGenerated)
	}
}

func TestServiceTerminate(t *testing.T) {
	svc := newService(t, pool.WithPoolSize(1))
	ctx := context.Background()

	if _, err := svc.GeneratePassword(ctx, generator.Default()); err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	svc.Terminate()
	if _, err := svc.GeneratePassword(ctx, generator.Default()); !errors.Is(err, pool.ErrPoolTerminated) {
		t.Fatalf("error = %v, want ErrPoolTerminated", err)
	}
}
