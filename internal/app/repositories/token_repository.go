package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/dberrors"
	"github.com/aylin/campuswell/internal/pkg/logger"
)

// TokenRepository handles refresh token and verification code storage
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken creates a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(token, userID, expiryDate, false, time.Now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetTokenByValue retrieves token information by value, validating revocation
// and expiry.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiryDate time.Time
	var isRevoked bool

	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get token by value SQL")
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token row")
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}

	if isRevoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return userID, nil
}

// RevokeToken revokes a refresh token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllUserTokens revokes all active tokens for a specific user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error building revoke all user tokens SQL")
		return fmt.Errorf("failed to build revoke all user tokens query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke all user tokens query")
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}

// CreateVerificationCode stores an onboarding verification code, replacing
// any previous unused code for the user.
func (r *TokenRepository) CreateVerificationCode(ctx context.Context, userID int64, code string, expiryDate time.Time) error {
	delSQL, delArgs, err := r.sb.Delete("verification_codes").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete verification code query: %w", err)
	}
	if _, err := r.db.Exec(ctx, delSQL, delArgs...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error clearing previous verification codes")
		return fmt.Errorf("error clearing verification codes: %w", err)
	}

	sql, args, err := r.sb.Insert("verification_codes").
		Columns("user_id", "code", "expiry_date", "created_at").
		Values(userID, code, expiryDate, time.Now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create verification code SQL")
		return fmt.Errorf("failed to build create verification code query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create verification code query")
		return fmt.Errorf("error creating verification code: %w", err)
	}
	return nil
}

// ConsumeVerificationCode validates a code for the user and deletes it on
// success so it cannot be replayed.
func (r *TokenRepository) ConsumeVerificationCode(ctx context.Context, userID int64, code string) error {
	var expiryDate time.Time

	sql, args, err := r.sb.Select("expiry_date").
		From("verification_codes").
		Where(squirrel.Eq{"user_id": userID, "code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build get verification code query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&expiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInvalidOTPCode
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning verification code row")
		return fmt.Errorf("error retrieving verification code: %w", err)
	}

	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidOTPCode
	}

	delSQL, delArgs, err := r.sb.Delete("verification_codes").
		Where(squirrel.Eq{"user_id": userID, "code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build consume verification code query: %w", err)
	}
	if _, err := r.db.Exec(ctx, delSQL, delArgs...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting consumed verification code")
		return fmt.Errorf("error consuming verification code: %w", err)
	}
	return nil
}

// CleanupExpiredTokens removes expired refresh tokens and stale revoked ones.
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	thirtyDaysAgo := time.Now().Add(-30 * 24 * time.Hour)
	now := time.Now()

	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expiry_date": now},
			squirrel.And{
				squirrel.Eq{"is_revoked": true},
				squirrel.Lt{"created_at": thirtyDaysAgo},
			},
		}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	deletedCount := cmdTag.RowsAffected()
	logger.Info().Int64("deletedCount", deletedCount).Msg("Cleaned up expired/old revoked tokens")
	return deletedCount, nil
}
