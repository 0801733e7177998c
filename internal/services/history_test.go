package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/dfs-optimizer/internal/models"
	"github.com/jstittsworth/dfs-optimizer/pkg/database"
)

func newTestHistoryService(t *testing.T) *HistoryService {
	t.Helper()
	db, err := database.NewConnection(":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewHistoryService(db)
	require.NoError(t, svc.Migrate())
	return svc
}

func TestHistoryService_RecordAndGet(t *testing.T) {
	svc := newTestHistoryService(t)
	ctx := context.Background()

	run := &models.OptimizationRun{
		ID:                       "run-1",
		Site:                     "FANDUEL",
		Sport:                    "MLB",
		Solver:                   "DEFAULT",
		RequestDigest:            "abc123",
		NumberOfLineupsRequested: 5,
		LineupsProduced:          5,
		DurationMillis:           42,
	}
	require.NoError(t, svc.Record(ctx, run))

	got, err := svc.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "FANDUEL", got.Site)
	assert.Equal(t, 5, got.LineupsProduced)
}

func TestHistoryService_Get_NotFound(t *testing.T) {
	svc := newTestHistoryService(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestHistoryService_List_NewestFirstAndLimitClamped(t *testing.T) {
	svc := newTestHistoryService(t)
	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &models.OptimizationRun{ID: id, Site: "FANDUEL", Sport: "MLB", Solver: "DEFAULT"}
		require.NoError(t, svc.Record(ctx, run))
		_ = i
	}

	runs, err := svc.List(ctx, 0) // clamps to default
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = svc.List(ctx, 1000) // clamps to 200 ceiling, still 3 rows
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestHistoryService_DeleteOlderThan(t *testing.T) {
	svc := newTestHistoryService(t)
	ctx := context.Background()

	run := &models.OptimizationRun{ID: "old-run", Site: "FANDUEL", Sport: "MLB", Solver: "DEFAULT"}
	require.NoError(t, svc.Record(ctx, run))

	deleted, err := svc.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.Get(ctx, "old-run")
	assert.Error(t, err)
}
