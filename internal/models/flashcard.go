package models

import (
	"time"

	"github.com/kberg/flashdeck/internal/card"
)

type Flashcard struct {
	ID            int64        `json:"id"`
	CategoryID    int64        `json:"category_id"`
	UserID        int64        `json:"user_id"`
	Type          card.Type    `json:"card_type"`
	Content       card.Content `json:"content"`
	IsLearned     bool         `json:"is_learned"`
	TimesReviewed int          `json:"times_reviewed"`
	LastReviewed  *time.Time   `json:"last_reviewed"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// FlashcardFilter narrows flashcard listings.
type FlashcardFilter struct {
	UserID     int64
	CategoryID int64
	Type       card.Type
	Learned    *bool
	Limit      int
	Offset     int
}
