package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

// MoodStore is the mood entry persistence surface.
type MoodStore interface {
	CreateEntry(ctx context.Context, entry *models.MoodEntry) (int64, error)
	ListEntriesByUser(ctx context.Context, userID int64, limit int) ([]*models.MoodEntry, error)
}

// trendWindow is how many recent entries feed the trend comparison.
const trendWindow = 14

// MoodService records mood entries and computes per-user analytics.
type MoodService struct {
	store    MoodStore
	provider ai.Provider
	logger   zerolog.Logger
}

// NewMoodService creates a new MoodService
func NewMoodService(store MoodStore, provider ai.Provider, logger zerolog.Logger) *MoodService {
	return &MoodService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// CreateEntry records a mood score with an optional note.
func (s *MoodService) CreateEntry(ctx context.Context, userID int64, req *dto.CreateMoodEntryRequest) (*models.MoodEntry, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, apperrors.NewValidationError("score", "score must be between 1 and 5")
	}

	entry := &models.MoodEntry{
		UserID: userID,
		Score:  req.Score,
		Note:   req.Note,
	}
	if _, err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns the user's recent entries with summary analytics.
func (s *MoodService) History(ctx context.Context, userID int64) (*dto.MoodListResponse, error) {
	entries, err := s.store.ListEntriesByUser(ctx, userID, trendWindow*2)
	if err != nil {
		return nil, err
	}
	return &dto.MoodListResponse{
		Entries:   entries,
		Analytics: ComputeMoodAnalytics(entries),
	}, nil
}

// WellnessActions suggests three micro-habits based on the user's most
// recent entry. Without history, suggestions assume a neutral mood.
func (s *MoodService) WellnessActions(ctx context.Context, userID int64) ([]ai.WellnessAction, error) {
	entries, err := s.store.ListEntriesByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}

	score := 3
	note := ""
	if len(entries) > 0 {
		score = entries[0].Score
		if entries[0].Note != nil {
			note = *entries[0].Note
		}
	}
	return s.provider.WellnessActions(ctx, score, note), nil
}

// ComputeMoodAnalytics summarizes entries (expected newest first). The trend
// compares the mean of the newer half against the older half; fewer than
// four entries is always stable.
func ComputeMoodAnalytics(entries []*models.MoodEntry) models.MoodAnalytics {
	analytics := models.MoodAnalytics{Trend: "stable", EntryCount: len(entries)}
	if len(entries) == 0 {
		return analytics
	}

	sum := 0
	for _, entry := range entries {
		sum += entry.Score
	}
	analytics.AverageScore = float64(sum) / float64(len(entries))

	if len(entries) < 4 {
		return analytics
	}

	half := len(entries) / 2
	recentSum, olderSum := 0, 0
	for i := 0; i < half; i++ {
		recentSum += entries[i].Score
	}
	for i := half; i < len(entries); i++ {
		olderSum += entries[i].Score
	}
	recentAvg := float64(recentSum) / float64(half)
	olderAvg := float64(olderSum) / float64(len(entries)-half)

	switch {
	case recentAvg-olderAvg > 0.3:
		analytics.Trend = "improving"
	case olderAvg-recentAvg > 0.3:
		analytics.Trend = "declining"
	}
	return analytics
}
