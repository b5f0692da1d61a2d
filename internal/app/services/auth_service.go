package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/auth"
	"github.com/aylin/campuswell/internal/pkg/email"
	"github.com/aylin/campuswell/internal/pkg/validation"
)

// AuthUserStore is the user persistence surface the auth service needs.
type AuthUserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// AuthTokenStore is the token persistence surface the auth service needs.
type AuthTokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CreateVerificationCode(ctx context.Context, userID int64, code string, expiryDate time.Time) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

const verificationCodeTTL = 15 * time.Minute

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userStore  AuthUserStore
	tokenStore AuthTokenStore
	jwtService *auth.JWTService
	email      email.Service
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore AuthUserStore,
	tokenStore AuthTokenStore,
	jwtService *auth.JWTService,
	emailService email.Service,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		email:      emailService,
		logger:     logger,
	}
}

// Register creates an account in the initial onboarding state and issues a
// verification code. New accounts start as students; the real role is picked
// during onboarding.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.ValidEmail(normalizedEmail) {
		return nil, apperrors.NewValidationError("email", "invalid email format")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("password", fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}

	if exists, err := s.userStore.EmailExists(ctx, normalizedEmail); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if exists, err := s.userStore.UsernameExists(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrUsernameExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	initial := models.InitialOnboardingState
	user := &models.User{
		Email:            normalizedEmail,
		Username:         req.Username,
		Password:         hashedPassword,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		RoleType:         models.RoleStudent,
		OnboardingStatus: initial.Status,
		CurrentStep:      initial.Step,
		IsActive:         true,
	}

	if _, err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerificationCode(ctx, user)

	tokenResp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: *tokenResp}, nil
}

// Login verifies credentials and issues a token pair. The identifier may be
// a username or an email address.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Username)

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userStore.GetUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userStore.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		// Same response for unknown user and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokenResp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: *tokenResp}, nil
}

// RefreshToken rotates a refresh token into a new token pair. The old token
// is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes all of the user's refresh tokens.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenStore.RevokeAllUserTokens(ctx, userID)
}

// GetProfile returns the user's public profile view.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.RefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// sendVerificationCode generates, stores and emails an onboarding code.
// Failures are logged but never fail the registration itself.
func (s *AuthService) sendVerificationCode(ctx context.Context, user *models.User) {
	code, err := email.GenerateCode()
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate verification code")
		return
	}
	if err := s.tokenStore.CreateVerificationCode(ctx, user.ID, code, time.Now().Add(verificationCodeTTL)); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store verification code")
		return
	}
	if err := s.email.SendVerificationCode(user.Email, user.FullName(), code); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification code email")
	}
}

// RunTokenCleanup sweeps expired refresh tokens and stale revoked ones, once
// immediately and then every interval. It blocks until ctx is cancelled, so
// callers run it in its own goroutine.
func (s *AuthService) RunTokenCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		deleted, err := s.tokenStore.CleanupExpiredTokens(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Refresh token cleanup failed")
		} else if deleted > 0 {
			s.logger.Info().Int64("deleted", deleted).Msg("Removed expired refresh tokens")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
