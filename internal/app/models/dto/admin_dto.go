package dto

// UpdateUserRequest is the admin payload for adjusting a user account.
type UpdateUserRequest struct {
	Role             *string `json:"role,omitempty" binding:"omitempty,oneof=student counselor admin partner"`
	OnboardingStatus *string `json:"onboardingStatus,omitempty" binding:"omitempty,oneof=active rejected inactive"`
}

// InstitutionalStats aggregates campus-wide wellbeing numbers for the
// admin dashboard.
type InstitutionalStats struct {
	TotalUsers       int64            `json:"totalUsers"`
	TotalPosts       int64            `json:"totalPosts"`
	TotalScreenings  int64            `json:"totalScreenings"`
	TotalAppointments int64           `json:"totalAppointments"`
	AverageMoodScore float64          `json:"averageMoodScore"`
	RiskDistribution map[string]int64 `json:"riskDistribution"` // latest risk level -> user count
}

// InsightResponse is the daily institutional insight payload.
type InsightResponse struct {
	Summary        string   `json:"summary"`
	TopConcerns    []string `json:"topConcerns"`
	Recommendation string   `json:"recommendation"`
}
