package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "campuswell.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 42, Email: "student@campus.edu", RoleType: models.RoleStudent}

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((720 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student@campus.edu", claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.RoleType)
	assert.Equal(t, "campuswell.test", claims.Issuer)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)
	access, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, _, _, err := newTestService(time.Hour).GenerateTokenPair(&models.User{ID: 1})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("bearer lowercase-scheme")
	require.NoError(t, err)
	assert.Equal(t, "lowercase-scheme", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = ExtractBearerToken("Token abc")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("S3curePass!")
	require.NoError(t, err)
	assert.NotEqual(t, "S3curePass!", hash)

	assert.True(t, CheckPassword(hash, "S3curePass!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
