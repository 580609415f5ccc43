package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kberg/flashdeck/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Summary(ctx context.Context, userID int64) (*models.SummaryStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SummaryStats), args.Error(1)
}

func (m *MockStatsRepository) StudyDays(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) CategoryAccuracy(ctx context.Context, userID int64) ([]models.CategoryAccuracy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryAccuracy), args.Error(1)
}

func (m *MockStatsRepository) UpsertStreakSnapshot(ctx context.Context, snap models.StreakSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
