package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jstittsworth/dfs-optimizer/internal/models"
	"github.com/jstittsworth/dfs-optimizer/pkg/database"
)

// HistoryService persists an auditable record of each optimizer run,
// grounded on the teacher's GORM persistence pattern
// (pkg/database.NewConnection + TableName() models).
type HistoryService struct {
	db *database.DB
}

func NewHistoryService(db *database.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Migrate creates the optimization_runs table if it doesn't exist.
func (s *HistoryService) Migrate() error {
	if err := s.db.AutoMigrate(&models.OptimizationRun{}); err != nil {
		return fmt.Errorf("failed to migrate optimization_runs: %w", err)
	}
	return nil
}

func (s *HistoryService) Record(ctx context.Context, run *models.OptimizationRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record optimization run: %w", err)
	}
	return nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (*models.OptimizationRun, error) {
	var run models.OptimizationRun
	if err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load optimization run %q: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]models.OptimizationRun, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 200 {
		limit = 200
	}
	var runs []models.OptimizationRun
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list optimization runs: %w", err)
	}
	return runs, nil
}

// DeleteOlderThan removes run records older than cutoff, used by the
// janitor's periodic sweep.
func (s *HistoryService) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.OptimizationRun{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune optimization runs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
