package models

import (
	"time"
)

// MoodEntry defines a self-reported mood record based on the 'mood_entries'
// table. Append-only.
type MoodEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Score     int       `json:"score" db:"score"` // 1 (worst) to 5 (best)
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MoodAnalytics summarizes a user's mood history for the dashboard.
type MoodAnalytics struct {
	AverageScore float64 `json:"averageScore"`
	EntryCount   int     `json:"entryCount"`
	Trend        string  `json:"trend"` // "improving", "declining" or "stable"
}
