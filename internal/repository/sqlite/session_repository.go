package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Insert appends one completed session. The table is an append-only log;
// there is deliberately no Update.
func (r *sessionRepository) Insert(ctx context.Context, s models.StudySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting study session: user_id=%d category_id=%d mode=%s", s.UserID, s.CategoryID, s.Mode)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, category_id, mode, started_at, ended_at, cards_reviewed, correct_answers, incorrect_answers, accuracy, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.UserID, s.CategoryID, s.Mode, s.StartedAt, s.EndedAt, s.CardsReviewed, s.CorrectAnswers, s.IncorrectAnswers, s.Accuracy, s.DurationSeconds)
	if err != nil {
		log.Error("failed to insert study session: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query := r.filtered(sqlBuilder.Select(
		"id", "user_id", "category_id", "mode", "started_at", "ended_at",
		"cards_reviewed", "correct_answers", "incorrect_answers", "accuracy", "duration_seconds", "created_at",
	).From("study_sessions"), filter).OrderBy("ended_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list study sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var s models.StudySession
		var mode string
		if err := rows.Scan(&s.ID, &s.UserID, &s.CategoryID, &mode, &s.StartedAt, &s.EndedAt,
			&s.CardsReviewed, &s.CorrectAnswers, &s.IncorrectAnswers, &s.Accuracy, &s.DurationSeconds, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Mode = card.Type(mode)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	query := r.filtered(sqlBuilder.Select("COUNT(*)").From("study_sessions"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sessionRepository) filtered(query squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CategoryID != 0 {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Mode != "" {
		query = query.Where(squirrel.Eq{"mode": filter.Mode})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"ended_at": *filter.Since})
	}
	return query
}
