package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/auth"
	"github.com/aylin/campuswell/internal/pkg/email"
)

type fakeAuthUserStore struct {
	byEmail    map[string]*models.User
	byUsername map[string]*models.User
	byID       map[int64]*models.User
	nextID     int64
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{
		byEmail:    make(map[string]*models.User),
		byUsername: make(map[string]*models.User),
		byID:       make(map[int64]*models.User),
	}
}

func (f *fakeAuthUserStore) add(user *models.User) {
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
	f.byID[user.ID] = user
}

func (f *fakeAuthUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	f.nextID++
	user.ID = f.nextID
	f.add(user)
	return user.ID, nil
}

func (f *fakeAuthUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetUserByEmail(ctx context.Context, emailAddr string) (*models.User, error) {
	user, ok := f.byEmail[emailAddr]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) EmailExists(ctx context.Context, emailAddr string) (bool, error) {
	_, ok := f.byEmail[emailAddr]
	return ok, nil
}

func (f *fakeAuthUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

type fakeAuthTokenStore struct {
	tokens   map[string]int64
	revoked  map[string]bool
	codes    map[int64]string
	cleanups chan struct{}
}

func newFakeAuthTokenStore() *fakeAuthTokenStore {
	return &fakeAuthTokenStore{
		tokens:   make(map[string]int64),
		revoked:  make(map[string]bool),
		codes:    make(map[int64]string),
		cleanups: make(chan struct{}, 8),
	}
}

func (f *fakeAuthTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeAuthTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, error) {
	if f.revoked[token] {
		return 0, apperrors.ErrTokenRevoked
	}
	userID, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeAuthTokenStore) RevokeToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeAuthTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for token, id := range f.tokens {
		if id == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func (f *fakeAuthTokenStore) CreateVerificationCode(ctx context.Context, userID int64, code string, expiryDate time.Time) error {
	f.codes[userID] = code
	return nil
}

func (f *fakeAuthTokenStore) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	select {
	case f.cleanups <- struct{}{}:
	default:
	}
	return 0, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAuthUserStore, *fakeAuthTokenStore) {
	t.Helper()
	users := newFakeAuthUserStore()
	tokens := newFakeAuthTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "campuswell.test",
	})
	emailService := email.NewService(email.SMTPConfig{}, zerolog.Nop())
	return NewAuthService(users, tokens, jwtService, emailService, zerolog.Nop()), users, tokens
}

func TestRegisterCreatesPendingStudent(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "New.Student@Campus.edu ",
		Username: "newstudent",
		Password: "longenough1",
	})
	require.NoError(t, err)

	user := users.byUsername["newstudent"]
	require.NotNil(t, user)
	assert.Equal(t, "new.student@campus.edu", user.Email)
	assert.Equal(t, models.RoleStudent, user.RoleType)
	assert.Equal(t, models.OnboardingPending, user.OnboardingStatus)
	assert.Equal(t, models.StepIdentityVerification, user.CurrentStep)
	assert.NotEqual(t, "longenough1", user.Password, "password must be stored hashed")

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.NotEmpty(t, tokens.codes[user.ID], "registration must issue a verification code")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	users.add(&models.User{ID: 1, Email: "taken@campus.edu", Username: "taken"})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "taken@campus.edu", Username: "other", Password: "longenough1",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "fresh@campus.edu", Username: "taken", Password: "longenough1",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	users.add(&models.User{ID: 1, Email: "jdoe@campus.edu", Username: "jdoe", Password: hash, IsActive: true})

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.User.ID)

	resp, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "JDoe@Campus.edu", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	users.add(&models.User{ID: 1, Email: "jdoe@campus.edu", Username: "jdoe", Password: hash, IsActive: true})
	users.add(&models.User{ID: 2, Email: "off@campus.edu", Username: "off", Password: hash, IsActive: false})

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown user must look like a bad password")

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "off", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	users.add(&models.User{ID: 1, Email: "jdoe@campus.edu", Username: "jdoe", IsActive: true})
	tokens.tokens["old-refresh"] = 1

	resp, err := svc.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "old-refresh", resp.RefreshToken)
	assert.True(t, tokens.revoked["old-refresh"], "the old refresh token must be revoked")

	_, err = svc.RefreshToken(context.Background(), "old-refresh")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	users.add(&models.User{ID: 1, Username: "jdoe", IsActive: true})
	tokens.tokens["a"] = 1
	tokens.tokens["b"] = 1
	tokens.tokens["other"] = 2

	require.NoError(t, svc.Logout(context.Background(), 1))
	assert.True(t, tokens.revoked["a"])
	assert.True(t, tokens.revoked["b"])
	assert.False(t, tokens.revoked["other"])
}

func TestRunTokenCleanupSweepsImmediatelyAndStops(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.RunTokenCleanup(ctx, time.Hour)
		close(done)
	}()

	select {
	case <-tokens.cleanups:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate cleanup sweep on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop on context cancellation")
	}
}
