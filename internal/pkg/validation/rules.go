package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Verification code pattern - 6 digits
	VerificationCodePattern = `^\d{6}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email            *regexp.Regexp
	VerificationCode *regexp.Regexp
}{
	Email:            regexp.MustCompile(EmailPattern),
	VerificationCode: regexp.MustCompile(VerificationCodePattern),
}

// ValidEmail reports whether the value looks like a lower-case email address.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// ValidVerificationCode reports whether the value is a 6-digit code.
func ValidVerificationCode(value string) bool {
	return CompiledPatterns.VerificationCode.MatchString(value)
}

// ValidPassword enforces the minimum password length.
func ValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}

// ValidName checks display-name length bounds.
func ValidName(value string) bool {
	return len(value) >= NameMinLength && len(value) <= NameMaxLength
}
