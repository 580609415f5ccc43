package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kberg/flashdeck/internal/models"
)

// MockAchievementRepository is a mock implementation of repository.AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListUnlocks(ctx context.Context, userID int64) ([]models.AchievementUnlock, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AchievementUnlock), args.Error(1)
}

func (m *MockAchievementRepository) InsertUnlock(ctx context.Context, userID int64, code string) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}
