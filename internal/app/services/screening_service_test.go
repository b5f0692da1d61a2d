package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

type fakeScreeningStore struct {
	created []*models.ScreeningAssessment
	latest  *models.ScreeningAssessment
	history []*models.ScreeningAssessment
}

func (f *fakeScreeningStore) CreateAssessment(ctx context.Context, a *models.ScreeningAssessment) (int64, error) {
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, a)
	return a.ID, nil
}

func (f *fakeScreeningStore) GetLatestAssessmentByUser(ctx context.Context, userID int64) (*models.ScreeningAssessment, error) {
	if f.latest == nil {
		return nil, apperrors.ErrAssessmentNotFound
	}
	return f.latest, nil
}

func (f *fakeScreeningStore) ListAssessmentsByUser(ctx context.Context, userID int64) ([]*models.ScreeningAssessment, error) {
	return f.history, nil
}

type fakeScreeningUserStore struct {
	updatedUser  int64
	updatedLevel models.RiskLevel
	updates      int
}

func (f *fakeScreeningUserStore) UpdateLatestRiskLevel(ctx context.Context, userID int64, level models.RiskLevel) error {
	f.updatedUser = userID
	f.updatedLevel = level
	f.updates++
	return nil
}

func TestScoreAnswers(t *testing.T) {
	cases := []struct {
		name    string
		answers map[string]int
		score   int
		level   models.RiskLevel
	}{
		{"all max is severe", map[string]int{"q1": 3, "q2": 3, "q3": 3, "q4": 3, "q5": 3}, 15, models.RiskSevere},
		{"severe boundary", map[string]int{"q1": 3, "q2": 3, "q3": 3, "q4": 3, "q5": 2, "q6": 1}, 15, models.RiskSevere},
		{"moderate boundary", map[string]int{"q1": 2, "q2": 2, "q3": 2, "q4": 2, "q5": 2}, 10, models.RiskModerate},
		{"just below moderate", map[string]int{"q1": 3, "q2": 3, "q3": 3}, 9, models.RiskLow},
		{"all zero", map[string]int{"q1": 0, "q2": 0}, 0, models.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, level := ScoreAnswers(tc.answers)
			assert.Equal(t, tc.score, score)
			assert.Equal(t, tc.level, level)
		})
	}
}

func TestScreeningSubmitRecordsAssessmentAndRiskLevel(t *testing.T) {
	store := &fakeScreeningStore{}
	userStore := &fakeScreeningUserStore{}
	provider := &fakeProvider{analysis: "stay hydrated"}
	svc := NewScreeningService(store, userStore, provider, zerolog.Nop())

	answers := map[string]int{"q1": 3, "q2": 3, "q3": 3, "q4": 3, "q5": 3}
	assessment, err := svc.Submit(context.Background(), 42, answers)
	require.NoError(t, err)

	assert.Equal(t, 15, assessment.Score)
	assert.Equal(t, models.RiskSevere, assessment.RiskLevel)
	assert.Equal(t, "stay hydrated", assessment.AIAnalysis)
	assert.JSONEq(t, `{"q1":3,"q2":3,"q3":3,"q4":3,"q5":3}`, assessment.Answers)

	require.Len(t, store.created, 1)
	assert.Equal(t, int64(42), userStore.updatedUser)
	assert.Equal(t, models.RiskSevere, userStore.updatedLevel)
}

func TestScreeningSubmitRejectsBadInput(t *testing.T) {
	svc := NewScreeningService(&fakeScreeningStore{}, &fakeScreeningUserStore{}, &fakeProvider{}, zerolog.Nop())

	_, err := svc.Submit(context.Background(), 1, map[string]int{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Submit(context.Background(), 1, map[string]int{"q1": 4})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Submit(context.Background(), 1, map[string]int{"q1": -1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
