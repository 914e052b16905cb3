package image

import (
	"context"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/do"
)

type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeRetryable
	outcomePermanent
)

func classify(err error) attemptOutcome {
	switch {
	case err == nil:
		return outcomeSuccess
	case Transient(err):
		return outcomeRetryable
	default:
		return outcomePermanent
	}
}

// Retrier wraps a Generator with a bounded immediate-retry policy: transient
// failures are retried up to MaxAttempts, permanent ones propagate unchanged
// on first sight.
type Retrier struct {
	Generator   Generator
	MaxAttempts int
}

func NewRetrier(i *do.Injector) (Generator, error) {
	return &Retrier{
		Generator:   do.MustInvoke[*SeedreamGenerator](i),
		MaxAttempts: do.MustInvokeNamed[int](i, "image_max_attempts"),
	}, nil
}

func (r *Retrier) Generate(ctx context.Context, params Params) (Result, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("retrier")

	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		result, err := r.Generator.Generate(ctx, params)
		switch classify(err) {
		case outcomeSuccess:
			return result, nil
		case outcomePermanent:
			return Result{}, err
		case outcomeRetryable:
			logger.Warn("transient image generation failure", "attempt", attempt, "max", r.MaxAttempts, "err", err)
			lastErr = err
		}
	}

	if lastErr == nil {
		return Result{}, ErrRetriesExhausted
	}
	return Result{}, lastErr
}
