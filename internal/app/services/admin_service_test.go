package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/helpers"
)

type fakeInsightStore struct {
	byDate map[string]*models.DailyInsight
	saves  int
	getErr error
}

func newFakeInsightStore() *fakeInsightStore {
	return &fakeInsightStore{byDate: make(map[string]*models.DailyInsight)}
}

func (f *fakeInsightStore) GetInsightByDate(ctx context.Context, day time.Time) (*models.DailyInsight, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	insight, ok := f.byDate[day.Format("2006-01-02")]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return insight, nil
}

func (f *fakeInsightStore) SaveInsight(ctx context.Context, insight *models.DailyInsight) error {
	f.saves++
	key := insight.InsightDate.Format("2006-01-02")
	// First write wins, mirroring the unique constraint on the day key
	if _, ok := f.byDate[key]; !ok {
		f.byDate[key] = insight
	}
	return nil
}

type fakeTextSource struct {
	postTexts []string
	notes     []string
}

func (f *fakeTextSource) ListRecentPostTexts(ctx context.Context, limit int) ([]string, error) {
	return f.postTexts, nil
}

func (f *fakeTextSource) ListRecentNotes(ctx context.Context, limit int) ([]string, error) {
	return f.notes, nil
}

func TestDailyInsightGeneratesOncePerDay(t *testing.T) {
	store := newFakeInsightStore()
	texts := &fakeTextSource{postTexts: []string{"exams are brutal"}, notes: []string{"tired"}}
	provider := &fakeProvider{insight: ai.InsightResult{
		Summary:        "Stress is rising",
		TopConcerns:    []string{"Exams"},
		Recommendation: "Extend library hours",
	}}
	svc := NewAdminService(nil, nil, store, texts, provider, zerolog.Nop())

	first, err := svc.DailyInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stress is rising", first.Summary)
	assert.Equal(t, 1, provider.insightCalls)
	assert.Equal(t, 1, store.saves)

	second, err := svc.DailyInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.insightCalls, "cached day must not regenerate")
	assert.Equal(t, 1, store.saves)
}

func TestDailyInsightReReadsAfterLosingTheRace(t *testing.T) {
	store := newFakeInsightStore()
	winner := &models.DailyInsight{Summary: "winner"}

	// Simulate a concurrent request storing its row between our miss and save
	texts := &fakeTextSource{}
	provider := &fakeProvider{insight: ai.InsightResult{Summary: "loser"}}
	svc := NewAdminService(nil, nil, store, texts, provider, zerolog.Nop())

	day, _ := helpers.DayBounds(time.Now())
	winner.InsightDate = day
	require.NoError(t, store.SaveInsight(context.Background(), winner))

	// The cache now hits, so the stored row is returned untouched
	got, err := svc.DailyInsight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "winner", got.Summary)
	assert.Zero(t, provider.insightCalls)
}

func TestDailyInsightPropagatesCacheReadFailures(t *testing.T) {
	store := newFakeInsightStore()
	store.getErr = errors.New("connection reset")
	provider := &fakeProvider{}
	svc := NewAdminService(nil, nil, store, &fakeTextSource{}, provider, zerolog.Nop())

	_, err := svc.DailyInsight(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.Zero(t, provider.insightCalls, "a failing read is not a cache miss")
	assert.Zero(t, store.saves)
}
