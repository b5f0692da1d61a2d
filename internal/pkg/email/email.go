package email

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Service defines the interface for email operations
type Service interface {
	// SendVerificationCode delivers an onboarding identity-verification
	// code. Must not fail the caller when SMTP is unconfigured.
	SendVerificationCode(toEmail, toName, code string) error
	// Configured reports whether real delivery is possible.
	Configured() bool
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type serviceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new email Service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &serviceImpl{
		config: config,
		logger: logger,
	}
}

// Configured reports whether SMTP credentials are present.
func (s *serviceImpl) Configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendVerificationCode sends the onboarding OTP code. When SMTP is not
// configured the code is logged instead so local development keeps working.
func (s *serviceImpl) SendVerificationCode(toEmail, toName, code string) error {
	if !s.Configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Msg("SMTP not configured - verification code not emailed. Use the code above for testing.")
		return nil
	}

	subject := "Your CampusWell Verification Code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to CampusWell!</h2>
				<p>Hello %s,</p>
				<p>Use this code to verify your identity and continue onboarding:</p>
				<p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">%s</p>
				<p>This code expires in 15 minutes. If you did not create an account, you can ignore this email.</p>
			</div>
		</body>
		</html>`, toName, code)

	return s.send(toEmail, subject, body)
}

func (s *serviceImpl) send(toEmail, subject, htmlBody string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	msg := []byte("From: " + s.config.FromName + " <" + s.config.FromEmail + ">\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Msg("Email sent")
	return nil
}

// GenerateCode produces a random 6-digit verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
