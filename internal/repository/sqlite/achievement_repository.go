package sqlite

import (
	"context"
	"database/sql"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(db *sql.DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) ListUnlocks(ctx context.Context, userID int64) ([]models.AchievementUnlock, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, code, unlocked_at
FROM achievement_unlocks
WHERE user_id = ?
ORDER BY unlocked_at ASC
`, userID)
	if err != nil {
		log.Error("failed to list unlocks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var unlocks []models.AchievementUnlock
	for rows.Next() {
		var u models.AchievementUnlock
		if err := rows.Scan(&u.UserID, &u.Code, &u.UnlockedAt); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// InsertUnlock records an unlock once. Returns true when the row was new.
func (r *achievementRepository) InsertUnlock(ctx context.Context, userID int64, code string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	res, err := r.db.ExecContext(ctx, `
INSERT INTO achievement_unlocks (user_id, code)
VALUES (?, ?)
ON CONFLICT(user_id, code) DO NOTHING
`, userID, code)
	if err != nil {
		log.Error("failed to insert unlock: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return n > 0, nil
}
