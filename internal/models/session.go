package models

import (
	"time"

	"github.com/kberg/flashdeck/internal/card"
)

// StudySession is the immutable record of one completed pass through a deck.
// Rows are inserted once at completion and never updated.
type StudySession struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	CategoryID       int64     `json:"category_id"`
	Mode             card.Type `json:"mode"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
	CardsReviewed    int       `json:"cards_reviewed"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	Accuracy         float64   `json:"accuracy"`
	DurationSeconds  int       `json:"duration_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionFilter narrows session-history listings.
type SessionFilter struct {
	UserID     int64
	CategoryID int64
	Mode       card.Type
	Since      *time.Time
	Limit      int
	Offset     int
}
