package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Upsert(ctx context.Context, subject, nickname string) (*models.User, error)
	SetPremium(ctx context.Context, id int64, premium bool) error
	ListIDsWithSessions(ctx context.Context) ([]int64, error)
}

// CategoryRepository handles category data access
type CategoryRepository interface {
	Get(ctx context.Context, id, userID int64) (*models.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Category, error)
	Insert(ctx context.Context, c models.Category) (int64, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, id, userID int64) error
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Get(ctx context.Context, id, userID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Deck(ctx context.Context, userID, categoryID int64, cardType card.Type) ([]models.Flashcard, error)
	Insert(ctx context.Context, f models.Flashcard) (int64, error)
	Update(ctx context.Context, f models.Flashcard) error
	Delete(ctx context.Context, id, userID int64) error
	RecordReview(ctx context.Context, id int64) error
	SetLearned(ctx context.Context, id int64, learned bool) error
}

// SessionRepository handles the append-only study session log
type SessionRepository interface {
	Insert(ctx context.Context, s models.StudySession) (int64, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.StudySession, error)
	Count(ctx context.Context, filter models.SessionFilter) (int, error)
}

// StatusRepository stores the per-category learned-status map, one row per
// user and category, written wholesale on each toggle.
type StatusRepository interface {
	Get(ctx context.Context, userID, categoryID int64) (map[int64]string, error)
	Put(ctx context.Context, userID, categoryID int64, statuses map[int64]string) error
}

// StatsRepository handles statistics data access
type StatsRepository interface {
	Summary(ctx context.Context, userID int64) (*models.SummaryStats, error)
	StudyDays(ctx context.Context, userID int64) ([]string, error)
	CategoryAccuracy(ctx context.Context, userID int64) ([]models.CategoryAccuracy, error)
	UpsertStreakSnapshot(ctx context.Context, snap models.StreakSnapshot) error
}

// GroupRepository handles study groups, membership and chat history
type GroupRepository interface {
	Get(ctx context.Context, id int64) (*models.StudyGroup, error)
	GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error)
	ListByUser(ctx context.Context, userID int64) ([]models.StudyGroup, error)
	Insert(ctx context.Context, g models.StudyGroup) (int64, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	InsertMessage(ctx context.Context, m models.GroupMessage) error
	GetMessage(ctx context.Context, id uuid.UUID) (*models.GroupMessage, error)
	ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.GroupMessage, error)
}

// AchievementRepository handles achievement unlocks
type AchievementRepository interface {
	ListUnlocks(ctx context.Context, userID int64) ([]models.AchievementUnlock, error)
	InsertUnlock(ctx context.Context, userID int64, code string) (bool, error)
}
