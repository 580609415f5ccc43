package sqlite

import (
	"context"
	"database/sql"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Summary(ctx context.Context, userID int64) (*models.SummaryStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var s models.SummaryStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(cards_reviewed), 0),
    COALESCE(SUM(correct_answers), 0),
    COALESCE(SUM(incorrect_answers), 0)
FROM study_sessions
WHERE user_id = ?
`, userID).Scan(&s.TotalSessions, &s.TotalCardsReviewed, &s.TotalCorrect, &s.TotalIncorrect)
	if err != nil {
		log.Error("failed to get summary stats: %v", err)
		return nil, err
	}

	if answered := s.TotalCorrect + s.TotalIncorrect; answered > 0 {
		s.OverallAccuracy = float64(s.TotalCorrect) / float64(answered) * 100
	}
	return &s, nil
}

// StudyDays returns the distinct local days with at least one completed
// session, newest first, as YYYY-MM-DD strings.
func (r *statsRepository) StudyDays(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT date(ended_at, 'localtime')
FROM study_sessions
WHERE user_id = ?
ORDER BY 1 DESC
`, userID)
	if err != nil {
		log.Error("failed to get study days: %v", err)
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (r *statsRepository) CategoryAccuracy(ctx context.Context, userID int64) ([]models.CategoryAccuracy, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT s.category_id, c.name, COUNT(*), AVG(s.accuracy)
FROM study_sessions s
JOIN categories c ON c.id = s.category_id
WHERE s.user_id = ?
GROUP BY s.category_id, c.name
ORDER BY AVG(s.accuracy) DESC
`, userID)
	if err != nil {
		log.Error("failed to get category accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.CategoryAccuracy
	for rows.Next() {
		var ca models.CategoryAccuracy
		var avg sql.NullFloat64
		if err := rows.Scan(&ca.CategoryID, &ca.CategoryName, &ca.Sessions, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			ca.AvgAccuracy = avg.Float64
		}
		stats = append(stats, ca)
	}
	return stats, rows.Err()
}

func (r *statsRepository) UpsertStreakSnapshot(ctx context.Context, snap models.StreakSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO streak_snapshots (user_id, day, current_streak, longest_streak)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, day) DO UPDATE SET
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak
`, snap.UserID, snap.Day, snap.CurrentStreak, snap.LongestStreak)
	if err != nil {
		log.Error("failed to upsert streak snapshot: %v", err)
	}
	return err
}
