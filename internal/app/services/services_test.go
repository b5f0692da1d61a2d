package services

import (
	"context"

	"github.com/aylin/campuswell/internal/pkg/ai"
)

// fakeProvider is a canned ai.Provider that records how often each surface
// was hit.
type fakeProvider struct {
	classifyResult ai.RiskAssessment
	analysis       string
	reply          string
	actions        []ai.WellnessAction
	insight        ai.InsightResult

	classifyCalls int
	insightCalls  int
}

func (f *fakeProvider) Classify(ctx context.Context, text string) ai.RiskAssessment {
	f.classifyCalls++
	return f.classifyResult
}

func (f *fakeProvider) AnalyzeAssessment(ctx context.Context, answers map[string]int, total int) string {
	return f.analysis
}

func (f *fakeProvider) ChatReply(ctx context.Context, message string) string {
	return f.reply
}

func (f *fakeProvider) WellnessActions(ctx context.Context, moodScore int, note string) []ai.WellnessAction {
	return f.actions
}

func (f *fakeProvider) InstitutionalInsights(ctx context.Context, texts []string) ai.InsightResult {
	f.insightCalls++
	return f.insight
}
