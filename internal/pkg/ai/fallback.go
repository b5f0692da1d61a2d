package ai

import (
	"strings"

	"github.com/aylin/campuswell/internal/app/models"
)

// crisisKeywords is the deterministic fallback list. It is intentionally
// small and literal; common crisis phrasing such as "end it all" is not
// matched. Expanding it is a policy decision for the clinical team, not a
// code change to make in passing.
var crisisKeywords = []string{"suicide", "kill myself", "hopeless", "die"}

// classifyFallback is the offline classifier: case-insensitive substring
// match against crisisKeywords. Match means severe, anything else low.
func classifyFallback(text string) RiskAssessment {
	lower := strings.ToLower(text)
	for _, keyword := range crisisKeywords {
		if strings.Contains(lower, keyword) {
			return RiskAssessment{RiskLevel: models.RiskSevere, Reason: "Keywords detected in offline mode."}
		}
	}
	return RiskAssessment{RiskLevel: models.RiskLow, Reason: "No crisis keywords."}
}

const (
	severeAnalysis = `Based on your responses, you seem to be experiencing significant distress.

**Key Observations:**
- High levels of reported difficulty in daily functioning.
- Consistent patterns of low mood or anxiety.

**Recommendation:**
It is highly recommended to speak with a professional counselor. While self-care is important, professional guidance can provide structured support to help you navigate these feelings effectively.`

	moderateAnalysis = `Your responses indicate moderate levels of stress or anxiety.

**Key Observations:**
- You are managing, but some days are harder than others.
- There may be specific triggers affecting your sleep or mood.

**Recommendation:**
Consider joining our peer support forum or trying our guided meditation resources. Establishing a routine can also be very helpful.`

	lowAnalysis = `You appear to be doing relatively well!

**Key Observations:**
- You have good resilience and coping mechanisms.
- Occasional stress is normal, but you are handling it effectively.

**Recommendation:**
Keep up your healthy habits! You might enjoy our community events to stay connected.`
)

// mockAnalysis tiers the canned screening analysis by total score, using the
// same thresholds as the scorer.
func mockAnalysis(total int) string {
	switch {
	case total >= 15:
		return severeAnalysis
	case total >= 10:
		return moderateAnalysis
	default:
		return lowAnalysis
	}
}

const (
	fallbackChatReply       = "I'm a simulated AI counselor. A remote provider is not configured, but I'm still here to listen."
	fallbackChatUnavailable = "I am having trouble connecting right now, but I am listening."
)

// fallbackActions is the static micro-habit trio served when the provider
// is unavailable.
func fallbackActions() []WellnessAction {
	return []WellnessAction{
		{Title: "Take a breath", Description: "Pause for 5 minutes and focus on your breathing."},
		{Title: "Walk outside", Description: "Fresh air can help clear your mind."},
		{Title: "Journal", Description: "Write down 3 things you are grateful for."},
	}
}

func insufficientDataInsight() InsightResult {
	return InsightResult{
		Summary:        "Insufficient data for AI analysis.",
		TopConcerns:    []string{"N/A"},
		Recommendation: "Encourage more student engagement to generate insights.",
	}
}
