package services

import (
	"context"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
	"github.com/kberg/flashdeck/internal/session"
)

// Achievement codes
const (
	AchievementFirstSession    = "first_session"
	AchievementTenSessions     = "ten_sessions"
	AchievementPerfectAccuracy = "perfect_accuracy"
	AchievementWeekStreak      = "week_streak"
	AchievementHundredCards    = "hundred_cards"
)

// Definitions is the fixed achievement catalog.
var Definitions = []models.Achievement{
	{Code: AchievementFirstSession, Name: "First Steps", Description: "Complete your first study session"},
	{Code: AchievementTenSessions, Name: "Regular", Description: "Complete 10 study sessions"},
	{Code: AchievementPerfectAccuracy, Name: "Flawless", Description: "Finish a session with 100% accuracy"},
	{Code: AchievementWeekStreak, Name: "On Fire", Description: "Study 7 days in a row"},
	{Code: AchievementHundredCards, Name: "Century", Description: "Review 100 cards in total"},
}

// AchievementService evaluates and lists achievement unlocks
type AchievementService interface {
	List(ctx context.Context, userID int64) ([]models.Achievement, []models.AchievementUnlock, error)
	EvaluateAfterSession(ctx context.Context, userID int64, summary session.Summary) ([]models.Achievement, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
	statsRepo       repository.StatsRepository
	statsSvc        StatsService
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(achievementRepo repository.AchievementRepository, statsRepo repository.StatsRepository, statsSvc StatsService) AchievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		statsRepo:       statsRepo,
		statsSvc:        statsSvc,
	}
}

func (s *achievementService) List(ctx context.Context, userID int64) ([]models.Achievement, []models.AchievementUnlock, error) {
	unlocks, err := s.achievementRepo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	return Definitions, unlocks, nil
}

// EvaluateAfterSession checks every achievement condition against the user's
// stats after a completed session and returns the newly unlocked ones.
func (s *achievementService) EvaluateAfterSession(ctx context.Context, userID int64, summary session.Summary) ([]models.Achievement, error) {
	log := logger.FromContext(ctx)

	stats, err := s.statsRepo.Summary(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	earned := []string{}
	if stats.TotalSessions >= 1 {
		earned = append(earned, AchievementFirstSession)
	}
	if stats.TotalSessions >= 10 {
		earned = append(earned, AchievementTenSessions)
	}
	if summary.CardsReviewed > 0 && summary.Accuracy == 100 {
		earned = append(earned, AchievementPerfectAccuracy)
	}
	if stats.TotalCardsReviewed >= 100 {
		earned = append(earned, AchievementHundredCards)
	}

	streak, err := s.statsSvc.Streak(ctx, userID)
	if err != nil {
		log.Warn("failed to compute streak for achievements: %v", err)
	} else if streak.CurrentStreak >= 7 {
		earned = append(earned, AchievementWeekStreak)
	}

	var unlocked []models.Achievement
	for _, code := range earned {
		isNew, err := s.achievementRepo.InsertUnlock(ctx, userID, code)
		if err != nil {
			log.Error("failed to record achievement %s: %v", code, err)
			continue
		}
		if isNew {
			if def := definition(code); def != nil {
				unlocked = append(unlocked, *def)
			}
			log.Info("achievement unlocked: user_id=%d code=%s", userID, code)
		}
	}
	return unlocked, nil
}

func definition(code string) *models.Achievement {
	for i := range Definitions {
		if Definitions[i].Code == code {
			return &Definitions[i]
		}
	}
	return nil
}
