package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor periodically sweeps stale run-history rows, adapted from the
// teacher's background-job pattern (StartupManager/DataFetcherService run
// on a schedule rather than on every request).
type Janitor struct {
	history   *HistoryService
	retention time.Duration
	logger    *logrus.Logger
	cron      *cron.Cron
}

func NewJanitor(history *HistoryService, retention time.Duration, logger *logrus.Logger) *Janitor {
	return &Janitor{
		history:   history,
		retention: retention,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the sweep per the given cron expression (e.g.
// "@every 1h") and begins running it in the background.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, j.sweep)
	if err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) sweep() {
	cutoff := time.Now().UTC().Add(-j.retention)
	n, err := j.history.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		j.logger.WithError(err).Warn("janitor sweep failed")
		return
	}
	if n > 0 {
		j.logger.WithField("deleted", n).Info("janitor pruned stale optimization runs")
	}
}
