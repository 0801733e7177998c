package services

import (
	"context"
	"time"

	"github.com/jstittsworth/dfs-optimizer/internal/optimizer"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerBackend wraps an optimizer.Backend in a circuit breaker that trips
// after repeated solver failures or timeouts on that BreakerBackend — the
// external wrap §5 says callers must provide around the generator's one
// unbounded suspension point. The failure counts belong to one
// BreakerBackend value; OptimizerHandler builds a new one for every request,
// so failures do not carry over from one request to the next.
type BreakerBackend struct {
	inner   optimizer.Backend
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewBreakerBackend(inner optimizer.Backend, maxRequests uint32, timeout time.Duration, logger *logrus.Logger) *BreakerBackend {
	settings := gobreaker.Settings{
		Name:        "milp-solve",
		MaxRequests: maxRequests,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("solver circuit breaker state changed")
		},
	}
	return &BreakerBackend{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (b *BreakerBackend) Solve(ctx context.Context, model optimizer.Model, opts optimizer.BackendOptions) (optimizer.SolveResult, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Solve(ctx, model, opts)
	})
	if err != nil {
		return optimizer.SolveResult{}, err
	}
	return result.(optimizer.SolveResult), nil
}
