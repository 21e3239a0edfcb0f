package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lirajourney/internal/models"
)

// MockRunRepository is a mock implementation of repository.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run models.BuildRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Get(ctx context.Context, id string) (*models.BuildRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildRun), args.Error(1)
}

func (m *MockRunRepository) Finish(ctx context.Context, id string, status string, finishedAt time.Time) (*models.BuildRun, error) {
	args := m.Called(ctx, id, status, finishedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildRun), args.Error(1)
}

func (m *MockRunRepository) List(ctx context.Context, filter models.RunFilter) ([]models.BuildRun, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BuildRun), args.Error(1)
}

func (m *MockRunRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockRunRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockPageRepository is a mock implementation of repository.PageRepository
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Insert(ctx context.Context, page models.BuildPage) (int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPageRepository) InsertBatch(ctx context.Context, pages []models.BuildPage) ([]int64, error) {
	args := m.Called(ctx, pages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPageRepository) PagesForRun(ctx context.Context, runID string) ([]models.BuildPage, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BuildPage), args.Error(1)
}

func (m *MockPageRepository) LatestForCharacter(ctx context.Context, characterID string) (*models.BuildPage, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildPage), args.Error(1)
}
