package repository

import (
	"context"
	"time"

	"github.com/vytor/lirajourney/internal/models"
)

// RunRepository handles build run data access
type RunRepository interface {
	Create(ctx context.Context, run models.BuildRun) error
	Get(ctx context.Context, id string) (*models.BuildRun, error)
	Finish(ctx context.Context, id string, status string, finishedAt time.Time) (*models.BuildRun, error)
	List(ctx context.Context, filter models.RunFilter) ([]models.BuildRun, error)
	Count(ctx context.Context, filter models.RunFilter) (int, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// PageRepository handles per-page build outcomes
type PageRepository interface {
	Insert(ctx context.Context, page models.BuildPage) (int64, error)
	InsertBatch(ctx context.Context, pages []models.BuildPage) ([]int64, error)
	PagesForRun(ctx context.Context, runID string) ([]models.BuildPage, error)
	LatestForCharacter(ctx context.Context, characterID string) (*models.BuildPage, error)
}
