package models

import (
	"time"
)

// ScreeningAssessment defines a submitted screening questionnaire based on
// the 'screening_assessments' table. Created once per submission, never
// mutated or deleted.
type ScreeningAssessment struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Score      int       `json:"score" db:"score"`           // Plain sum of all answer values
	RiskLevel  RiskLevel `json:"riskLevel" db:"risk_level"`  // Derived from Score by the scorer
	Answers    string    `json:"answers" db:"answers"`       // Serialized question-id -> value mapping
	AIAnalysis string    `json:"aiAnalysis" db:"ai_analysis"` // Generated prose summary
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
