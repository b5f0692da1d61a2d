package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

type fakeMoodStore struct {
	entries []*models.MoodEntry
}

func (f *fakeMoodStore) CreateEntry(ctx context.Context, entry *models.MoodEntry) (int64, error) {
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeMoodStore) ListEntriesByUser(ctx context.Context, userID int64, limit int) ([]*models.MoodEntry, error) {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

// scores builds newest-first entries from the given values.
func scores(values ...int) []*models.MoodEntry {
	entries := make([]*models.MoodEntry, len(values))
	for i, v := range values {
		entries[i] = &models.MoodEntry{ID: int64(i + 1), Score: v}
	}
	return entries
}

func TestComputeMoodAnalytics(t *testing.T) {
	cases := []struct {
		name    string
		entries []*models.MoodEntry
		average float64
		trend   string
	}{
		{"no entries", nil, 0, "stable"},
		{"too few for a trend", scores(5, 1, 1), 7.0 / 3.0, "stable"},
		{"improving", scores(5, 5, 2, 2), 3.5, "improving"},
		{"declining", scores(1, 2, 4, 5), 3, "declining"},
		{"flat", scores(3, 3, 3, 3), 3, "stable"},
		{"small delta stays stable", scores(3, 4, 3, 4), 3.5, "stable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analytics := ComputeMoodAnalytics(tc.entries)
			assert.Equal(t, len(tc.entries), analytics.EntryCount)
			assert.InDelta(t, tc.average, analytics.AverageScore, 1e-9)
			assert.Equal(t, tc.trend, analytics.Trend)
		})
	}
}

func TestMoodCreateEntryValidatesScore(t *testing.T) {
	svc := NewMoodService(&fakeMoodStore{}, &fakeProvider{}, zerolog.Nop())

	_, err := svc.CreateEntry(context.Background(), 1, &dto.CreateMoodEntryRequest{Score: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateEntry(context.Background(), 1, &dto.CreateMoodEntryRequest{Score: 6})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	entry, err := svc.CreateEntry(context.Background(), 1, &dto.CreateMoodEntryRequest{Score: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, entry.Score)
}

func TestWellnessActionsUsesLatestEntry(t *testing.T) {
	note := "rough week"
	store := &fakeMoodStore{entries: []*models.MoodEntry{{ID: 1, Score: 2, Note: &note}}}
	provider := &fakeProvider{actions: []ai.WellnessAction{{Title: "Walk", Description: "Ten minutes outside"}}}
	svc := NewMoodService(store, provider, zerolog.Nop())

	actions, err := svc.WellnessActions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Walk", actions[0].Title)
}
