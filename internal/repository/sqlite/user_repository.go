package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, subject, nickname, is_premium, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Subject, &u.Nickname, &u.IsPremium, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, subject, nickname string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: subject=%s", subject)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
INSERT INTO users (subject, nickname)
VALUES (?, ?)
ON CONFLICT(subject) DO UPDATE SET
    nickname = CASE WHEN excluded.nickname != '' THEN excluded.nickname ELSE users.nickname END
RETURNING id, subject, nickname, is_premium, created_at
`, subject, nickname).Scan(&u.ID, &u.Subject, &u.Nickname, &u.IsPremium, &u.CreatedAt)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", u.ID)
	return &u, nil
}

func (r *userRepository) SetPremium(ctx context.Context, id int64, premium bool) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("setting premium: user_id=%d premium=%v", id, premium)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_premium = ? WHERE id = ?`, premium, id)
	if err != nil {
		log.Error("failed to set premium: %v", err)
	}
	return err
}

func (r *userRepository) ListIDsWithSessions(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM study_sessions`)
	if err != nil {
		log.Error("failed to list users with sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
