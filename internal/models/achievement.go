package models

import "time"

// Achievement is a fixed definition; unlocks are stored per user.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AchievementUnlock struct {
	UserID     int64     `json:"user_id"`
	Code       string    `json:"code"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
