package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64            `json:"id" db:"id" example:"1"`                                    // Unique identifier for the user
	Email            string           `json:"email" db:"email" example:"student@campus.edu"`             // User's email address
	Username         string           `json:"username" db:"username" example:"jdoe"`                     // Unique username
	Password         string           `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	FirstName        string           `json:"firstName" db:"first_name" example:"John"`                  // User's first name
	LastName         string           `json:"lastName" db:"last_name" example:"Doe"`                     // User's last name
	PhoneNumber      *string          `json:"phoneNumber,omitempty" db:"phone_number"`                   // Phone number (nullable)
	RoleType         RoleType         `json:"roleType" db:"role" example:"student"`                      // User's role
	OnboardingStatus OnboardingStatus `json:"onboardingStatus" db:"onboarding_status" example:"pending"` // Coarse onboarding lifecycle stage
	CurrentStep      OnboardingStep   `json:"currentStep" db:"current_step" example:"identity_verification"`
	LatestRiskLevel  *RiskLevel       `json:"latestRiskLevel,omitempty" db:"latest_risk_level"` // Overwritten on each screening (nullable)
	IsActive         bool             `json:"isActive" db:"is_active" example:"true"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// OnboardingState returns the user's current onboarding state pair.
func (u *User) OnboardingState() OnboardingState {
	return OnboardingState{Status: u.OnboardingStatus, Step: u.CurrentStep}
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
