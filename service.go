// Package passforge generates passwords on a bounded pool of isolated
// execution contexts. The Service type is the main entry point; it wires
// the generator package behind the pool's request interface so callers
// get concurrency, retries, and timeouts without touching either directly.
package passforge

import (
	"context"
	"fmt"

	"github.com/passforge/passforge/generator"
	"github.com/passforge/passforge/pool"
)

// Service dispatches generation requests across a fixed pool of workers.
type Service struct {
	pool *pool.Pool
}

// New builds a Service. Options are forwarded to the underlying pool;
// the handler factory is always owned by the Service and cannot be
// overridden.
func New(opts ...pool.Option) (*Service, error) {
	opts = append(opts, pool.WithHandlerFactory(func(contextID int) (pool.Handler, error) {
		return pool.HandlerFunc(handle), nil
	}))
	p, err := pool.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Service{pool: p}, nil
}

// Initialize spins up the execution contexts ahead of the first request.
// Calling it is optional; the first submission initializes lazily.
func (s *Service) Initialize() error {
	return s.pool.Initialize()
}

// GeneratePassword produces a single password for cfg.
func (s *Service) GeneratePassword(ctx context.Context, cfg generator.Config) (string, error) {
	fut, err := s.pool.Submit(pool.ActionGenerate, cfg)
	if err != nil {
		return "", err
	}
	v, err := fut.GetWithContext(ctx)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GenerateMultiple produces one password per config, preserving input
// order. Work is split across the pool's contexts and reassembled.
func (s *Service) GenerateMultiple(ctx context.Context, cfgs []generator.Config, opts *pool.BatchOptions) ([]string, error) {
	fut, err := pool.SubmitBatch[generator.Config, string](s.pool, pool.ActionGenerateBatch, cfgs, opts)
	if err != nil {
		return nil, err
	}
	return fut.GetWithContext(ctx)
}

// ValidateConfig checks cfg without generating anything.
func (s *Service) ValidateConfig(ctx context.Context, cfg generator.Config) (generator.ValidationResult, error) {
	fut, err := s.pool.Submit(pool.ActionValidateConfig, cfg)
	if err != nil {
		return generator.ValidationResult{}, err
	}
	v, err := fut.GetWithContext(ctx)
	if err != nil {
		return generator.ValidationResult{}, err
	}
	return v.(generator.ValidationResult), nil
}

// CalculateEntropy reports the theoretical strength of passwords cfg
// would produce.
func (s *Service) CalculateEntropy(ctx context.Context, cfg generator.Config) (generator.EntropyReport, error) {
	fut, err := s.pool.Submit(pool.ActionEntropy, cfg)
	if err != nil {
		return generator.EntropyReport{}, err
	}
	v, err := fut.GetWithContext(ctx)
	if err != nil {
		return generator.EntropyReport{}, err
	}
	return v.(generator.EntropyReport), nil
}

// SupportedTypes lists the password types the service can generate.
func (s *Service) SupportedTypes(ctx context.Context) ([]string, error) {
	fut, err := s.pool.Submit(pool.ActionSupportedTypes, nil)
	if err != nil {
		return nil, err
	}
	v, err := fut.GetWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Stats returns a snapshot of pool counters and gauges.
func (s *Service) Stats() pool.StatsSnapshot {
	return s.pool.Stats()
}

// Terminate shuts the pool down, rejecting queued and in-flight work.
func (s *Service) Terminate() {
	s.pool.Terminate()
}

// handle maps pool requests onto the generator package.
func handle(ctx context.Context, req pool.Request, report pool.ReportFunc) (any, error) {
	switch req.Action {
	case pool.ActionGenerate:
		cfg, ok := req.Payload.(generator.Config)
		if !ok {
			return nil, fmt.Errorf("generate: unexpected payload %T", req.Payload)
		}
		return generator.Generate(cfg)

	case pool.ActionGenerateBatch:
		cfgs, ok := req.Payload.([]generator.Config)
		if !ok {
			return nil, fmt.Errorf("generate_batch: unexpected payload %T", req.Payload)
		}
		out := make([]string, 0, len(cfgs))
		for i, cfg := range cfgs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pw, err := generator.Generate(cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, pw)
			report(i+1, len(cfgs))
		}
		return out, nil

	case pool.ActionValidateConfig:
		cfg, ok := req.Payload.(generator.Config)
		if !ok {
			return nil, fmt.Errorf("validate_config: unexpected payload %T", req.Payload)
		}
		return generator.Validate(cfg), nil

	case pool.ActionEntropy:
		cfg, ok := req.Payload.(generator.Config)
		if !ok {
			return nil, fmt.Errorf("calculate_entropy: unexpected payload %T", req.Payload)
		}
		return generator.Entropy(cfg)

	case pool.ActionSupportedTypes:
		return generator.Types(), nil

	default:
		return nil, fmt.Errorf("unknown action %q", req.Action)
	}
}
