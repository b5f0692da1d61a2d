package dto

import (
	"github.com/aylin/campuswell/internal/app/models"
)

// CreateMoodEntryRequest is the payload for recording a mood entry.
type CreateMoodEntryRequest struct {
	Score int     `json:"score" binding:"required,min=1,max=5" example:"3"`
	Note  *string `json:"note,omitempty" binding:"omitempty,max=2000"`
}

// MoodListResponse bundles a user's entries with summary analytics.
type MoodListResponse struct {
	Entries   []*models.MoodEntry   `json:"entries"`
	Analytics models.MoodAnalytics  `json:"analytics"`
}

// WellnessActionResponse is one generated micro-habit suggestion.
type WellnessActionResponse struct {
	Title       string `json:"title" example:"The Coffee Mindfulness Ritual"`
	Description string `json:"description" example:"Drink your first coffee of the day without your phone."`
}
