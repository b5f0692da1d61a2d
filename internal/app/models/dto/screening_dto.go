package dto

import (
	"github.com/aylin/campuswell/internal/app/models"
)

// SubmitScreeningRequest carries the questionnaire answers, a mapping of
// question id to an integer in 0..3.
type SubmitScreeningRequest struct {
	Answers map[string]int `json:"answers" binding:"required,min=1"`
}

// ScreeningResponse is the view of a persisted assessment.
type ScreeningResponse struct {
	ID         int64            `json:"id" example:"7"`
	UserID     int64            `json:"userId" example:"1"`
	Score      int              `json:"score" example:"12"`
	RiskLevel  models.RiskLevel `json:"riskLevel" example:"moderate" enums:"low,moderate,severe"`
	Answers    string           `json:"answers"`
	AIAnalysis string           `json:"aiAnalysis"`
	CreatedAt  string           `json:"createdAt" example:"2025-04-23T12:01:05Z"`
}

// NewScreeningResponse maps an assessment model to its response view.
func NewScreeningResponse(a *models.ScreeningAssessment) ScreeningResponse {
	return ScreeningResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Score:      a.Score,
		RiskLevel:  a.RiskLevel,
		Answers:    a.Answers,
		AIAnalysis: a.AIAnalysis,
		CreatedAt:  a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
