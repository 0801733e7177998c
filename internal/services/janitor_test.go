package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/dfs-optimizer/internal/models"
	"github.com/jstittsworth/dfs-optimizer/pkg/database"
)

func TestJanitor_SweepDeletesStaleRuns(t *testing.T) {
	db, err := database.NewConnection(":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	history := NewHistoryService(db)
	require.NoError(t, history.Migrate())
	require.NoError(t, history.Record(context.Background(), &models.OptimizationRun{ID: "stale", Site: "FANDUEL", Sport: "MLB"}))

	janitor := NewJanitor(history, time.Hour, logrus.New())
	janitor.retention = -time.Hour // everything already recorded counts as stale
	janitor.sweep()

	_, err = history.Get(context.Background(), "stale")
	require.Error(t, err)
}

func TestJanitor_StartRejectsInvalidSchedule(t *testing.T) {
	db, err := database.NewConnection(":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	history := NewHistoryService(db)
	require.NoError(t, history.Migrate())

	janitor := NewJanitor(history, time.Hour, logrus.New())
	require.Error(t, janitor.Start("not a cron expression"))
}
