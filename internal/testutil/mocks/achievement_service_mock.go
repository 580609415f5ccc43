package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/session"
)

// MockAchievementService is a mock implementation of services.AchievementService
type MockAchievementService struct {
	mock.Mock
}

func (m *MockAchievementService) List(ctx context.Context, userID int64) ([]models.Achievement, []models.AchievementUnlock, error) {
	args := m.Called(ctx, userID)
	var defs []models.Achievement
	var unlocks []models.AchievementUnlock
	if args.Get(0) != nil {
		defs = args.Get(0).([]models.Achievement)
	}
	if args.Get(1) != nil {
		unlocks = args.Get(1).([]models.AchievementUnlock)
	}
	return defs, unlocks, args.Error(2)
}

func (m *MockAchievementService) EvaluateAfterSession(ctx context.Context, userID int64, summary session.Summary) ([]models.Achievement, error) {
	args := m.Called(ctx, userID, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}
