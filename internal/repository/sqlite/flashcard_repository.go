package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Get(ctx context.Context, id, userID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+flashcardColumns+`
FROM flashcards
WHERE id = ? AND user_id = ?
`, id, userID)

	f, err := scanFlashcard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &f, nil
}

func (r *flashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: user_id=%d category_id=%d type=%s", filter.UserID, filter.CategoryID, filter.Type)

	query := sqlBuilder.Select(
		"id", "category_id", "user_id", "card_type", "content",
		"is_learned", "times_reviewed", "last_reviewed", "created_at", "updated_at",
	).From("flashcards")

	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CategoryID != 0 {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"card_type": filter.Type})
	}
	if filter.Learned != nil {
		query = query.Where(squirrel.Eq{"is_learned": *filter.Learned})
	}

	query = query.OrderBy("created_at ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
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
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		f, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, f)
	}
	return cards, rows.Err()
}

// Deck returns every card of the given type in a category. An empty result is
// a valid empty deck, not an error.
func (r *flashcardRepository) Deck(ctx context.Context, userID, categoryID int64, cardType card.Type) ([]models.Flashcard, error) {
	return r.List(ctx, models.FlashcardFilter{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       cardType,
	})
}

func (r *flashcardRepository) Insert(ctx context.Context, f models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: category_id=%d type=%s", f.CategoryID, f.Type)

	contentJSON, err := card.Marshal(f.Content)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (category_id, user_id, card_type, content, is_learned)
VALUES (?, ?, ?, ?, ?)
`, f.CategoryID, f.UserID, f.Type, contentJSON, f.IsLearned)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *flashcardRepository) Update(ctx context.Context, f models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%d", f.ID)

	contentJSON, err := card.Marshal(f.Content)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
UPDATE flashcards
SET card_type = ?, content = ?, is_learned = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND user_id = ?
`, f.Type, contentJSON, f.IsLearned, f.ID, f.UserID)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) RecordReview(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	_, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET times_reviewed = times_reviewed + 1, last_reviewed = CURRENT_TIMESTAMP
WHERE id = ?
`, id)
	if err != nil {
		log.Error("failed to record review: %v", err)
	}
	return err
}

func (r *flashcardRepository) SetLearned(ctx context.Context, id int64, learned bool) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	_, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET is_learned = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, learned, id)
	if err != nil {
		log.Error("failed to set learned flag: %v", err)
	}
	return err
}
