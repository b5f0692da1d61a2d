package dto

import (
	"github.com/aylin/campuswell/internal/app/models"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"student@campus.edu"`
	Username  string `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cretPass!"`
	FirstName string `json:"firstName" binding:"omitempty,max=100" example:"John"`
	LastName  string `json:"lastName" binding:"omitempty,max=100" example:"Doe"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"s3cretPass!"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID               int64             `json:"id" example:"1"`
	Email            string            `json:"email" example:"student@campus.edu"`
	Username         string            `json:"username" example:"jdoe"`
	FirstName        string            `json:"firstName" example:"John"`
	LastName         string            `json:"lastName" example:"Doe"`
	PhoneNumber      *string           `json:"phoneNumber,omitempty"`
	RoleType         string            `json:"roleType" example:"student" enums:"student,counselor,admin,partner"`
	OnboardingStatus string            `json:"onboardingStatus" example:"pending"`
	CurrentStep      string            `json:"currentStep" example:"identity_verification"`
	LatestRiskLevel  *models.RiskLevel `json:"latestRiskLevel,omitempty" enums:"low,moderate,severe"`
	IsActive         bool              `json:"isActive" example:"true"`
}

// NewUserResponse maps a user model to its public view.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		PhoneNumber:      user.PhoneNumber,
		RoleType:         string(user.RoleType),
		OnboardingStatus: string(user.OnboardingStatus),
		CurrentStep:      string(user.CurrentStep),
		LatestRiskLevel:  user.LatestRiskLevel,
		IsActive:         user.IsActive,
	}
}
