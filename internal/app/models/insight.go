package models

import (
	"time"
)

// DailyInsight is a cached aggregate analysis of collective user sentiment,
// computed at most once per calendar day from mood notes and forum posts.
// The 'daily_insights' table carries a unique constraint on insight_date so
// concurrent cache misses cannot produce duplicate rows.
type DailyInsight struct {
	ID             int64     `json:"id" db:"id"`
	InsightDate    time.Time `json:"insightDate" db:"insight_date"` // Calendar day (date only)
	Summary        string    `json:"summary" db:"summary"`
	TopConcerns    []string  `json:"topConcerns" db:"top_concerns"` // Stored as jsonb
	Recommendation string    `json:"recommendation" db:"recommendation"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
