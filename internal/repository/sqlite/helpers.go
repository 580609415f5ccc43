package sqlite

import (
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const flashcardColumns = "id, category_id, user_id, card_type, content, is_learned, times_reviewed, last_reviewed, created_at, updated_at"

func scanFlashcard(s rowScanner) (models.Flashcard, error) {
	var f models.Flashcard
	var typeStr string
	var contentJSON []byte
	var lastReviewed sql.NullTime

	err := s.Scan(&f.ID, &f.CategoryID, &f.UserID, &typeStr, &contentJSON,
		&f.IsLearned, &f.TimesReviewed, &lastReviewed, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return models.Flashcard{}, err
	}

	cardType, err := card.ParseType(typeStr)
	if err != nil {
		return models.Flashcard{}, err
	}
	f.Type = cardType

	content, err := card.Unmarshal(cardType, contentJSON)
	if err != nil {
		return models.Flashcard{}, err
	}
	f.Content = content

	if lastReviewed.Valid {
		t := lastReviewed.Time
		f.LastReviewed = &t
	}
	return f, nil
}
