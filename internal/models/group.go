package models

import (
	"time"

	"github.com/google/uuid"
)

type StudyGroup struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	OwnerID    int64     `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type GroupMember struct {
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type GroupMessage struct {
	ID        uuid.UUID `json:"id"`
	GroupID   int64     `json:"group_id"`
	UserID    int64     `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageFilter pages through a group's chat history, newest first.
type MessageFilter struct {
	GroupID int64
	Before  *time.Time
	Limit   int
}
