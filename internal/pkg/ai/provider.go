package ai

import (
	"context"

	"github.com/aylin/campuswell/internal/app/models"
)

// RiskAssessment is the coarse output of the crisis classifier.
type RiskAssessment struct {
	RiskLevel models.RiskLevel `json:"riskLevel"`
	Reason    string           `json:"reason"`
}

// WellnessAction is one generated micro-habit suggestion.
type WellnessAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InsightResult is the aggregate campus analysis produced for admins.
type InsightResult struct {
	Summary        string   `json:"summary"`
	TopConcerns    []string `json:"topConcerns"`
	Recommendation string   `json:"recommendation"`
}

// Provider is the language-model surface the services depend on. None of the
// methods return an error: every provider failure degrades to a deterministic
// fallback so a submission never fails because the AI features are
// unavailable.
type Provider interface {
	// Classify assesses free text for instant crisis risk.
	Classify(ctx context.Context, text string) RiskAssessment
	// AnalyzeAssessment produces a supportive prose summary of a screening.
	AnalyzeAssessment(ctx context.Context, answers map[string]int, total int) string
	// ChatReply answers one AI-counselor chat message.
	ChatReply(ctx context.Context, message string) string
	// WellnessActions suggests three personalized micro-habits.
	WellnessActions(ctx context.Context, moodScore int, note string) []WellnessAction
	// InstitutionalInsights analyzes anonymous campus texts for admins.
	InstitutionalInsights(ctx context.Context, texts []string) InsightResult
}
