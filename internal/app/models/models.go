package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleCounselor RoleType = "counselor"
	RoleAdmin     RoleType = "admin"
	RolePartner   RoleType = "partner"
)

// ValidRole reports whether the given string is a known role.
func ValidRole(role string) bool {
	switch RoleType(role) {
	case RoleStudent, RoleCounselor, RoleAdmin, RolePartner:
		return true
	}
	return false
}

// RiskLevel is the coarse risk tier produced by both the screening
// scorer and the crisis classifier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskSevere   RiskLevel = "severe"
)

// ValidRiskLevel reports whether the given string is a known risk level.
func ValidRiskLevel(level string) bool {
	switch RiskLevel(level) {
	case RiskLow, RiskModerate, RiskSevere:
		return true
	}
	return false
}
