package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

// Score thresholds for the screening risk tiers.
const (
	severeScoreThreshold   = 15
	moderateScoreThreshold = 10
)

// ScreeningStore is the assessment persistence surface.
type ScreeningStore interface {
	CreateAssessment(ctx context.Context, assessment *models.ScreeningAssessment) (int64, error)
	GetLatestAssessmentByUser(ctx context.Context, userID int64) (*models.ScreeningAssessment, error)
	ListAssessmentsByUser(ctx context.Context, userID int64) ([]*models.ScreeningAssessment, error)
}

// ScreeningUserStore is the slice of user persistence the screening flow
// needs to keep the profile's latest risk level current.
type ScreeningUserStore interface {
	UpdateLatestRiskLevel(ctx context.Context, userID int64, level models.RiskLevel) error
}

// ScreeningService scores questionnaires and records assessments.
type ScreeningService struct {
	store     ScreeningStore
	userStore ScreeningUserStore
	provider  ai.Provider
	logger    zerolog.Logger
}

// NewScreeningService creates a new ScreeningService
func NewScreeningService(store ScreeningStore, userStore ScreeningUserStore, provider ai.Provider, logger zerolog.Logger) *ScreeningService {
	return &ScreeningService{
		store:     store,
		userStore: userStore,
		provider:  provider,
		logger:    logger,
	}
}

// ScoreAnswers sums the answer values and maps the total onto a risk tier.
// The scoring is deterministic and independent of question ids: 15 or more
// is severe, 10 or more is moderate, anything below is low.
func ScoreAnswers(answers map[string]int) (int, models.RiskLevel) {
	total := 0
	for _, value := range answers {
		total += value
	}

	switch {
	case total >= severeScoreThreshold:
		return total, models.RiskSevere
	case total >= moderateScoreThreshold:
		return total, models.RiskModerate
	default:
		return total, models.RiskLow
	}
}

// Submit scores the questionnaire, generates the prose analysis, persists
// the assessment and overwrites the user's latest risk level. The analysis
// degrades to a canned text when the AI provider is unavailable, so
// submission never fails on provider errors.
func (s *ScreeningService) Submit(ctx context.Context, userID int64, answers map[string]int) (*models.ScreeningAssessment, error) {
	if len(answers) == 0 {
		return nil, apperrors.NewValidationError("answers", "answers cannot be empty")
	}
	for questionID, value := range answers {
		if value < 0 || value > 3 {
			return nil, apperrors.NewValidationError("answers", fmt.Sprintf("answer %s out of range 0..3", questionID))
		}
	}

	total, riskLevel := ScoreAnswers(answers)
	analysis := s.provider.AnalyzeAssessment(ctx, answers, total)

	serialized, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize answers: %w", err)
	}

	assessment := &models.ScreeningAssessment{
		UserID:     userID,
		Score:      total,
		RiskLevel:  riskLevel,
		Answers:    string(serialized),
		AIAnalysis: analysis,
	}
	if _, err := s.store.CreateAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	if err := s.userStore.UpdateLatestRiskLevel(ctx, userID, riskLevel); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int("score", total).
		Str("riskLevel", string(riskLevel)).
		Msg("Screening assessment recorded")
	return assessment, nil
}

// Latest returns the user's most recent assessment.
func (s *ScreeningService) Latest(ctx context.Context, userID int64) (*models.ScreeningAssessment, error) {
	return s.store.GetLatestAssessmentByUser(ctx, userID)
}

// History returns all of the user's assessments, newest first.
func (s *ScreeningService) History(ctx context.Context, userID int64) ([]*models.ScreeningAssessment, error) {
	return s.store.ListAssessmentsByUser(ctx, userID)
}
