package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/services"
	"github.com/kberg/flashdeck/internal/session"
	"github.com/kberg/flashdeck/internal/testutil/mocks"
)

type achievementFixture struct {
	achievementRepo *mocks.MockAchievementRepository
	statsRepo       *mocks.MockStatsRepository
	svc             services.AchievementService
}

func newAchievementFixture() *achievementFixture {
	achievementRepo := new(mocks.MockAchievementRepository)
	statsRepo := new(mocks.MockStatsRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	userRepo := new(mocks.MockUserRepository)
	statsSvc := services.NewStatsService(statsRepo, sessionRepo, userRepo)
	return &achievementFixture{
		achievementRepo: achievementRepo,
		statsRepo:       statsRepo,
		svc:             services.NewAchievementService(achievementRepo, statsRepo, statsSvc),
	}
}

func TestFirstSessionUnlock(t *testing.T) {
	f := newAchievementFixture()

	f.statsRepo.On("Summary", mock.Anything, int64(1)).
		Return(&models.SummaryStats{TotalSessions: 1, TotalCardsReviewed: 10}, nil)
	f.statsRepo.On("StudyDays", mock.Anything, int64(1)).
		Return([]string{time.Now().Format("2006-01-02")}, nil)
	f.achievementRepo.On("InsertUnlock", mock.Anything, int64(1), services.AchievementFirstSession).
		Return(true, nil)

	unlocked, err := f.svc.EvaluateAfterSession(context.Background(), 1, session.Summary{
		CardsReviewed: 10, CorrectAnswers: 7, IncorrectAnswers: 3, Accuracy: 70,
	})
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, services.AchievementFirstSession, unlocked[0].Code)
}

func TestRepeatUnlockIsSilent(t *testing.T) {
	f := newAchievementFixture()

	f.statsRepo.On("Summary", mock.Anything, int64(1)).
		Return(&models.SummaryStats{TotalSessions: 3, TotalCardsReviewed: 30}, nil)
	f.statsRepo.On("StudyDays", mock.Anything, int64(1)).
		Return([]string{time.Now().Format("2006-01-02")}, nil)
	f.achievementRepo.On("InsertUnlock", mock.Anything, int64(1), services.AchievementFirstSession).
		Return(false, nil)

	unlocked, err := f.svc.EvaluateAfterSession(context.Background(), 1, session.Summary{
		CardsReviewed: 10, CorrectAnswers: 5, IncorrectAnswers: 5, Accuracy: 50,
	})
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestPerfectAccuracyAndVolumeUnlocks(t *testing.T) {
	f := newAchievementFixture()

	f.statsRepo.On("Summary", mock.Anything, int64(1)).
		Return(&models.SummaryStats{TotalSessions: 12, TotalCardsReviewed: 120}, nil)
	f.statsRepo.On("StudyDays", mock.Anything, int64(1)).
		Return([]string{time.Now().Format("2006-01-02")}, nil)
	f.achievementRepo.On("InsertUnlock", mock.Anything, int64(1), mock.Anything).
		Return(true, nil)

	unlocked, err := f.svc.EvaluateAfterSession(context.Background(), 1, session.Summary{
		CardsReviewed: 10, CorrectAnswers: 10, Accuracy: 100,
	})
	require.NoError(t, err)

	codes := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		codes = append(codes, a.Code)
	}
	assert.Contains(t, codes, services.AchievementFirstSession)
	assert.Contains(t, codes, services.AchievementTenSessions)
	assert.Contains(t, codes, services.AchievementPerfectAccuracy)
	assert.Contains(t, codes, services.AchievementHundredCards)
	assert.NotContains(t, codes, services.AchievementWeekStreak)
}

func TestWeekStreakUnlock(t *testing.T) {
	f := newAchievementFixture()

	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, time.Now().AddDate(0, 0, -i).Format("2006-01-02"))
	}

	f.statsRepo.On("Summary", mock.Anything, int64(1)).
		Return(&models.SummaryStats{TotalSessions: 7, TotalCardsReviewed: 70}, nil)
	f.statsRepo.On("StudyDays", mock.Anything, int64(1)).Return(days, nil)
	f.achievementRepo.On("InsertUnlock", mock.Anything, int64(1), mock.Anything).
		Return(true, nil)

	unlocked, err := f.svc.EvaluateAfterSession(context.Background(), 1, session.Summary{
		CardsReviewed: 10, CorrectAnswers: 6, IncorrectAnswers: 4, Accuracy: 60,
	})
	require.NoError(t, err)

	codes := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		codes = append(codes, a.Code)
	}
	assert.Contains(t, codes, services.AchievementWeekStreak)
}

func TestListReturnsCatalogAndUnlocks(t *testing.T) {
	f := newAchievementFixture()

	f.achievementRepo.On("ListUnlocks", mock.Anything, int64(1)).
		Return([]models.AchievementUnlock{{UserID: 1, Code: services.AchievementFirstSession}}, nil)

	defs, unlocks, err := f.svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, defs, 5)
	require.Len(t, unlocks, 1)
	assert.Equal(t, services.AchievementFirstSession, unlocks[0].Code)
}
