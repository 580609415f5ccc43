// Package session implements the in-memory study session engine: deck
// shuffling, the active/complete state machine, answer scoring and the final
// summary. Sessions live here until completion; only the completed summary is
// written to the store.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/models"
)

type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

// Status is the per-card learned tag used by classic mode. It is independent
// of the correct/incorrect counters and survives restarts.
type Status string

const (
	StatusLearning Status = "learning"
	StatusLearned  Status = "learned"
)

var (
	ErrEmptyDeck       = errors.New("deck has no cards")
	ErrCompleted       = errors.New("session already complete")
	ErrWrongMode       = errors.New("operation not supported in this study mode")
	ErrAlreadyAnswered = errors.New("card already answered")
	ErrCardNotInDeck   = errors.New("card is not part of this deck")
)

// Summary is the scored result of a completed session.
type Summary struct {
	CardsReviewed    int       `json:"cards_reviewed"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	Accuracy         float64   `json:"accuracy"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
	DurationSeconds  int       `json:"duration_seconds"`
}

// Progress is a snapshot of the running session for the client.
type Progress struct {
	Index     int   `json:"index"`
	Total     int   `json:"total"`
	Correct   int   `json:"correct"`
	Incorrect int   `json:"incorrect"`
	State     State `json:"state"`
}

// AnswerResult reports the outcome of a submitted answer. Submitting the last
// card's answer completes the session, in which case Summary is set. CardID
// identifies the card that was scored; callers must use it rather than
// re-reading the current card, which has already advanced.
type AnswerResult struct {
	CardID        int64    `json:"card_id"`
	Correct       bool     `json:"correct"`
	CorrectAnswer string   `json:"correct_answer"`
	Completed     bool     `json:"completed"`
	Summary       *Summary `json:"summary,omitempty"`
}

// Session is one pass through a shuffled deck. All methods are safe for
// concurrent use; the HTTP layer may touch the same token from retries.
type Session struct {
	Token      uuid.UUID
	UserID     int64
	CategoryID int64
	Mode       card.Type

	deck       []models.Flashcard
	index      int
	state      State
	correct    int
	incorrect  int
	statuses   map[int64]Status
	answered   map[int64]bool
	startedAt  time.Time
	lastActive time.Time
	summary    *Summary

	mu sync.Mutex
}

// New creates an active session over an already-shuffled deck. An empty deck
// is rejected: the caller must surface the dedicated "no cards" state instead
// of ever entering active.
func New(userID, categoryID int64, mode card.Type, deck []models.Flashcard) (*Session, error) {
	if len(deck) == 0 {
		return nil, ErrEmptyDeck
	}
	for _, c := range deck {
		if c.Type != mode {
			return nil, fmt.Errorf("card %d has type %s, want %s", c.ID, c.Type, mode)
		}
	}
	now := time.Now()
	return &Session{
		Token:      uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Mode:       mode,
		deck:       deck,
		state:      StateActive,
		statuses:   map[int64]Status{},
		answered:   map[int64]bool{},
		startedAt:  now,
		lastActive: now,
	}, nil
}

// SeedStatuses preloads persisted learned statuses (classic mode). Statuses
// for cards no longer in the deck are kept; they are ignored by the scorer.
func (s *Session) SeedStatuses(statuses map[int64]Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, st := range statuses {
		s.statuses[id] = st
	}
}

// Current returns the card at the current index.
func (s *Session) Current() (models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateComplete {
		return models.Flashcard{}, ErrCompleted
	}
	return s.deck[s.index], nil
}

// Deck returns the shuffled deck order.
func (s *Session) Deck() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Flashcard, len(s.deck))
	copy(out, s.deck)
	return out
}

// Progress returns a snapshot of the running counters.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		Index:     s.index,
		Total:     len(s.deck),
		Correct:   s.correct,
		Incorrect: s.incorrect,
		State:     s.state,
	}
}

// Advance moves to the next card. Advancing from the last card completes the
// session and returns the summary; advancing a completed session is an error.
func (s *Session) Advance() (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateComplete {
		return nil, ErrCompleted
	}
	s.lastActive = time.Now()
	if s.index < len(s.deck)-1 {
		s.index++
		return nil, nil
	}
	return s.complete(), nil
}

// Retreat moves back one card. Classic mode only; at index 0 it is a no-op.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != card.TypeClassic {
		return ErrWrongMode
	}
	if s.state == StateComplete {
		return ErrCompleted
	}
	s.lastActive = time.Now()
	if s.index > 0 {
		s.index--
	}
	return nil
}

// MarkStatus tags a card as learning or learned. Classic mode only. The tag
// does not touch the correct/incorrect counters.
func (s *Session) MarkStatus(cardID int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != card.TypeClassic {
		return ErrWrongMode
	}
	if s.state == StateComplete {
		return ErrCompleted
	}
	if status != StatusLearning && status != StatusLearned {
		return fmt.Errorf("unknown status %q", status)
	}
	if !s.inDeck(cardID) {
		return ErrCardNotInDeck
	}
	s.lastActive = time.Now()
	s.statuses[cardID] = status
	return nil
}

// Statuses returns a copy of the per-card status map.
func (s *Session) Statuses() map[int64]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]Status, len(s.statuses))
	for id, st := range s.statuses {
		out[id] = st
	}
	return out
}

// SubmitAnswer scores the current card and advances. True/false and multiple
// choice only; a card can be answered once. Submitting on the last card
// completes the session.
func (s *Session) SubmitAnswer(answer string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode == card.TypeClassic {
		return AnswerResult{}, ErrWrongMode
	}
	if s.state == StateComplete {
		return AnswerResult{}, ErrCompleted
	}

	current := s.deck[s.index]
	if s.answered[current.ID] {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	correct, err := card.CheckAnswer(current.Content, answer)
	if err != nil {
		return AnswerResult{}, err
	}
	s.answered[current.ID] = true
	if correct {
		s.correct++
	} else {
		s.incorrect++
	}
	s.lastActive = time.Now()

	result := AnswerResult{
		CardID:        current.ID,
		Correct:       correct,
		CorrectAnswer: correctAnswerOf(current.Content),
	}

	if s.index < len(s.deck)-1 {
		s.index++
	} else {
		result.Completed = true
		result.Summary = s.complete()
	}
	return result, nil
}

// Restart re-enters active with zeroed counters over a freshly shuffled deck.
// Learned statuses are deliberately kept.
func (s *Session) Restart(deck []models.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(deck) == 0 {
		return ErrEmptyDeck
	}
	now := time.Now()
	s.deck = deck
	s.index = 0
	s.state = StateActive
	s.correct = 0
	s.incorrect = 0
	s.answered = map[int64]bool{}
	s.startedAt = now
	s.lastActive = now
	s.summary = nil
	return nil
}

// Summary returns the computed summary, or nil while the session is active.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// State returns the current machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastActive returns the time of the most recent transition, for TTL sweeps.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// complete transitions to StateComplete and computes the summary.
// Caller must hold the lock.
func (s *Session) complete() *Summary {
	s.state = StateComplete
	correct, incorrect := s.correct, s.incorrect
	if s.Mode == card.TypeClassic {
		correct, incorrect = 0, 0
		for _, c := range s.deck {
			switch s.statuses[c.ID] {
			case StatusLearned:
				correct++
			case StatusLearning:
				incorrect++
			}
		}
	}

	now := time.Now()
	s.summary = &Summary{
		CardsReviewed:    len(s.deck),
		CorrectAnswers:   correct,
		IncorrectAnswers: incorrect,
		Accuracy:         Accuracy(correct, incorrect),
		StartedAt:        s.startedAt,
		EndedAt:          now,
		DurationSeconds:  int(now.Sub(s.startedAt).Seconds()),
	}
	return s.summary
}

func (s *Session) inDeck(cardID int64) bool {
	for _, c := range s.deck {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// Accuracy computes the percentage of correct answers, 0 when nothing was
// answered.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func correctAnswerOf(content card.Content) string {
	switch c := content.(type) {
	case card.TrueFalse:
		return c.CorrectAnswer
	case card.MultipleChoice:
		return c.CorrectAnswer
	default:
		return ""
	}
}
