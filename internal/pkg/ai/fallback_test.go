package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aylin/campuswell/internal/app/models"
)

func TestClassifyFallbackKeywordMatching(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.RiskLevel
	}{
		{"suicide keyword", "I have been thinking about suicide", models.RiskSevere},
		{"case insensitive", "everything feels HOPELESS lately", models.RiskSevere},
		{"keyword inside sentence", "sometimes I want to kill myself", models.RiskSevere},
		{"paraphrase is not matched", "I want to end it all", models.RiskLow},
		{"clean text", "exams went fine, feeling okay", models.RiskLow},
		{"empty text", "", models.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyFallback(tc.text)
			assert.Equal(t, tc.want, got.RiskLevel)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestDisabledClientAnswersFromFallbacks(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	assert.False(t, client.Enabled())

	ctx := context.Background()

	result := client.Classify(ctx, "I feel hopeless")
	assert.Equal(t, models.RiskSevere, result.RiskLevel)

	assert.Equal(t, mockAnalysis(15), client.AnalyzeAssessment(ctx, map[string]int{"q1": 3}, 15))
	assert.Equal(t, mockAnalysis(10), client.AnalyzeAssessment(ctx, map[string]int{"q1": 2}, 10))
	assert.Equal(t, mockAnalysis(0), client.AnalyzeAssessment(ctx, map[string]int{"q1": 0}, 0))

	assert.NotEmpty(t, client.ChatReply(ctx, "hello"))
	assert.Len(t, client.WellnessActions(ctx, 3, ""), 3)

	insight := client.InstitutionalInsights(ctx, []string{"text"})
	assert.Equal(t, insufficientDataInsight(), insight)
}

func TestMockAnalysisUsesScoreTiers(t *testing.T) {
	assert.True(t, strings.Contains(mockAnalysis(16), "significant distress"))
	assert.True(t, strings.Contains(mockAnalysis(12), "moderate levels"))
	assert.True(t, strings.Contains(mockAnalysis(3), "doing relatively well"))
}
