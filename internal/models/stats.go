package models

import "time"

type SummaryStats struct {
	TotalSessions      int     `json:"total_sessions"`
	TotalCardsReviewed int     `json:"total_cards_reviewed"`
	TotalCorrect       int     `json:"total_correct"`
	TotalIncorrect     int     `json:"total_incorrect"`
	OverallAccuracy    float64 `json:"overall_accuracy"`
}

type StreakStats struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	LastStudyDay  *string `json:"last_study_day"`
}

type CategoryAccuracy struct {
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Sessions     int     `json:"sessions"`
	AvgAccuracy  float64 `json:"avg_accuracy"`
}

// StreakSnapshot is written daily by the scheduler so the dashboard can chart
// streak history without recomputing it from raw sessions.
type StreakSnapshot struct {
	UserID        int64     `json:"user_id"`
	Day           string    `json:"day"` // YYYY-MM-DD
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	CreatedAt     time.Time `json:"created_at"`
}
