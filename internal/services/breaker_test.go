package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/dfs-optimizer/internal/optimizer"
)

type failingBackend struct {
	calls int
}

func (b *failingBackend) Solve(ctx context.Context, model optimizer.Model, opts optimizer.BackendOptions) (optimizer.SolveResult, error) {
	b.calls++
	return optimizer.SolveResult{}, errors.New("solver exploded")
}

type succeedingBackend struct{}

func (b *succeedingBackend) Solve(ctx context.Context, model optimizer.Model, opts optimizer.BackendOptions) (optimizer.SolveResult, error) {
	return optimizer.SolveResult{Feasible: true, Objective: 1}, nil
}

func TestBreakerBackend_PassesThroughSuccess(t *testing.T) {
	b := NewBreakerBackend(&succeedingBackend{}, 1, time.Second, logrus.New())
	result, err := b.Solve(context.Background(), optimizer.Model{}, optimizer.BackendOptions{})
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestBreakerBackend_TripsAfterRepeatedFailures(t *testing.T) {
	inner := &failingBackend{}
	b := NewBreakerBackend(inner, 1, time.Minute, logrus.New())

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = b.Solve(context.Background(), optimizer.Model{}, optimizer.BackendOptions{})
	}
	assert.Error(t, lastErr)

	callsBeforeOpen := inner.calls
	_, err := b.Solve(context.Background(), optimizer.Model{}, optimizer.BackendOptions{})
	assert.Error(t, err)
	// once open, the breaker short-circuits without reaching the inner backend
	assert.Equal(t, callsBeforeOpen, inner.calls)
}
