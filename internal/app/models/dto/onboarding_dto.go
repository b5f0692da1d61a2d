package dto

// VerifyIdentityRequest carries the OTP code for identity verification.
type VerifyIdentityRequest struct {
	Code string `json:"code" binding:"required,len=6" example:"123456"`
}

// SelectRoleRequest carries the chosen account role.
type SelectRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student counselor admin partner" example:"student"`
}

// ProfileSetupRequest carries the onboarding profile fields.
type ProfileSetupRequest struct {
	FirstName   string  `json:"firstName" binding:"required,min=1,max=100" example:"John"`
	LastName    string  `json:"lastName" binding:"required,min=1,max=100" example:"Doe"`
	PhoneNumber *string `json:"phoneNumber,omitempty" binding:"omitempty,max=20"`
}

// AdminReviewRequest is the admin decision on a document-path user.
type AdminReviewRequest struct {
	Status string  `json:"status" binding:"required,oneof=active rejected" example:"active"`
	Reason *string `json:"reason,omitempty"`
}

// OnboardingResponse reports the user's position in the onboarding flow.
type OnboardingResponse struct {
	Message string       `json:"message" example:"Identity verified"`
	User    UserResponse `json:"user"`
}

// DocumentResponse is the view of an uploaded onboarding document.
type DocumentResponse struct {
	ID     int64  `json:"id" example:"3"`
	Type   string `json:"type" example:"id_proof"`
	Status string `json:"status" example:"pending"`
}
