package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/vytor/lirajourney/internal/errors"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/repository"
)

const defaultHistoryLimit = 10

// RunDetail is a run together with its page outcomes.
type RunDetail struct {
	Run   models.BuildRun
	Pages []models.BuildPage
}

// HistoryService reads and prunes the build history
type HistoryService interface {
	Recent(ctx context.Context, filter models.RunFilter) ([]models.BuildRun, int, error)
	Run(ctx context.Context, id string) (*RunDetail, error)
	LastPage(ctx context.Context, characterID string) (*models.BuildPage, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

type historyService struct {
	runs  repository.RunRepository
	pages repository.PageRepository
	now   func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(runs repository.RunRepository, pages repository.PageRepository) HistoryService {
	return &historyService{runs: runs, pages: pages, now: time.Now}
}

func (s *historyService) Recent(ctx context.Context, filter models.RunFilter) ([]models.BuildRun, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing recent runs: character=%s, status=%s", filter.CharacterID, filter.Status)

	if filter.Status != "" && !validRunStatus(filter.Status) {
		return nil, 0, errors.NewValidationError("status", "must be one of running, ok, partial, failed")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}

	runs, err := s.runs.List(ctx, filter)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.runs.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return runs, total, nil
}

func (s *historyService) Run(ctx context.Context, id string) (*RunDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting run detail: id=%s", id)

	run, err := s.runs.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("build run", id)
		}
		log.Error("failed to get run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	pages, err := s.pages.PagesForRun(ctx, id)
	if err != nil {
		log.Error("failed to list pages: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &RunDetail{Run: *run, Pages: pages}, nil
}

func (s *historyService) LastPage(ctx context.Context, characterID string) (*models.BuildPage, error) {
	page, err := s.pages.LatestForCharacter(ctx, characterID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("build page", characterID)
		}
		logger.FromContext(ctx).Error("failed to get latest page: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return page, nil
}

func (s *historyService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.NewValidationError("older_than", "must be positive")
	}
	n, err := s.runs.DeleteBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		logger.FromContext(ctx).Error("failed to prune runs: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func validRunStatus(status string) bool {
	switch status {
	case models.RunStatusRunning, models.RunStatusOK, models.RunStatusPartial, models.RunStatusFailed:
		return true
	}
	return false
}
