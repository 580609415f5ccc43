package services

import (
	"context"
	"time"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

const dayFormat = "2006-01-02"

// StatsService handles study statistics and streaks
type StatsService interface {
	Summary(ctx context.Context, userID int64) (*models.SummaryStats, error)
	Streak(ctx context.Context, userID int64) (*models.StreakStats, error)
	CategoryAccuracy(ctx context.Context, userID int64) ([]models.CategoryAccuracy, error)
	History(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error)
	SnapshotStreaks(ctx context.Context) error
}

type statsService struct {
	statsRepo   repository.StatsRepository
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, sessionRepo repository.SessionRepository, userRepo repository.UserRepository) StatsService {
	return &statsService{
		statsRepo:   statsRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

func (s *statsService) Summary(ctx context.Context, userID int64) (*models.SummaryStats, error) {
	summary, err := s.statsRepo.Summary(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

func (s *statsService) Streak(ctx context.Context, userID int64) (*models.StreakStats, error) {
	days, err := s.statsRepo.StudyDays(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	current, longest := ComputeStreaks(days, time.Now())
	streak := &models.StreakStats{
		CurrentStreak: current,
		LongestStreak: longest,
	}
	if len(days) > 0 {
		streak.LastStudyDay = &days[0]
	}
	return streak, nil
}

func (s *statsService) CategoryAccuracy(ctx context.Context, userID int64) ([]models.CategoryAccuracy, error) {
	stats, err := s.statsRepo.CategoryAccuracy(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) History(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error) {
	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}

// SnapshotStreaks records today's streak values for every user that has ever
// completed a session. Failures for one user do not stop the run.
func (s *statsService) SnapshotStreaks(ctx context.Context) error {
	log := logger.FromContext(ctx)

	userIDs, err := s.userRepo.ListIDsWithSessions(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	now := time.Now()
	day := now.Format(dayFormat)
	for _, userID := range userIDs {
		days, err := s.statsRepo.StudyDays(ctx, userID)
		if err != nil {
			log.Error("failed to load study days for user %d: %v", userID, err)
			continue
		}
		current, longest := ComputeStreaks(days, now)
		err = s.statsRepo.UpsertStreakSnapshot(ctx, models.StreakSnapshot{
			UserID:        userID,
			Day:           day,
			CurrentStreak: current,
			LongestStreak: longest,
		})
		if err != nil {
			log.Error("failed to snapshot streak for user %d: %v", userID, err)
		}
	}
	log.Info("recorded streak snapshots for %d users", len(userIDs))
	return nil
}

// ComputeStreaks derives the current and longest daily streaks from a list of
// distinct study days sorted newest first. The current streak counts back from
// today, or from yesterday when today has no session yet.
func ComputeStreaks(days []string, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	parsed := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.ParseInLocation(dayFormat, d, now.Location())
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0, 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Current streak: most recent day must be today or yesterday.
	if parsed[0].Equal(today) || parsed[0].Equal(today.AddDate(0, 0, -1)) {
		current = 1
		for i := 1; i < len(parsed); i++ {
			if !parsed[i-1].AddDate(0, 0, -1).Equal(parsed[i]) {
				break
			}
			current++
		}
	}

	run := 1
	longest = 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].AddDate(0, 0, -1).Equal(parsed[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}
