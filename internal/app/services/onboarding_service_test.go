package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

type fakeOnboardingUserStore struct {
	users map[int64]*models.User
}

func (f *fakeOnboardingUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeOnboardingUserStore) UpdateOnboarding(ctx context.Context, userID int64, state models.OnboardingState) error {
	f.users[userID].OnboardingStatus = state.Status
	f.users[userID].CurrentStep = state.Step
	return nil
}

func (f *fakeOnboardingUserStore) UpdateRole(ctx context.Context, userID int64, role models.RoleType) error {
	f.users[userID].RoleType = role
	return nil
}

func (f *fakeOnboardingUserStore) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phoneNumber *string) error {
	f.users[userID].FirstName = firstName
	f.users[userID].LastName = lastName
	f.users[userID].PhoneNumber = phoneNumber
	return nil
}

type fakeCodeStore struct {
	validCode string
	consumed  int
}

func (f *fakeCodeStore) ConsumeVerificationCode(ctx context.Context, userID int64, code string) error {
	if code != f.validCode {
		return apperrors.ErrInvalidOTPCode
	}
	f.consumed++
	return nil
}

type fakeDocumentStore struct {
	docs   []*models.Document
	status models.DocumentStatus
}

func (f *fakeDocumentStore) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	doc.ID = int64(len(f.docs) + 1)
	f.docs = append(f.docs, doc)
	return doc.ID, nil
}

func (f *fakeDocumentStore) ListDocumentsByUser(ctx context.Context, userID int64) ([]*models.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentStore) UpdateDocumentStatus(ctx context.Context, userID int64, status models.DocumentStatus) error {
	f.status = status
	return nil
}

type fakeStorage struct{}

func (fakeStorage) SaveDocument(fileHeader *multipart.FileHeader) (string, error) {
	return "documents/fake.pdf", nil
}
func (fakeStorage) Delete(relPath string) error    { return nil }
func (fakeStorage) FullPath(relPath string) string { return relPath }

func newOnboardingFixture(state models.OnboardingState, role models.RoleType) (*OnboardingService, *fakeOnboardingUserStore, *fakeCodeStore, *fakeDocumentStore) {
	users := &fakeOnboardingUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "u@campus.edu", RoleType: role, OnboardingStatus: state.Status, CurrentStep: state.Step, IsActive: true},
	}}
	codes := &fakeCodeStore{validCode: "654321"}
	docs := &fakeDocumentStore{}
	svc := NewOnboardingService(users, codes, docs, fakeStorage{}, false, zerolog.Nop())
	return svc, users, codes, docs
}

func TestVerifyIdentityConsumesCode(t *testing.T) {
	svc, _, codes, _ := newOnboardingFixture(models.InitialOnboardingState, models.RoleStudent)

	user, err := svc.VerifyIdentity(context.Background(), 1, "654321")
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingVerified, user.OnboardingStatus)
	assert.Equal(t, models.StepRoleSelection, user.CurrentStep)
	assert.Equal(t, 1, codes.consumed)
}

func TestVerifyIdentityRejectsWrongCode(t *testing.T) {
	svc, users, _, _ := newOnboardingFixture(models.InitialOnboardingState, models.RoleStudent)

	_, err := svc.VerifyIdentity(context.Background(), 1, "000000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTPCode)
	assert.Equal(t, models.OnboardingPending, users.users[1].OnboardingStatus)
}

func TestVerifyIdentityDevModeBypass(t *testing.T) {
	users := &fakeOnboardingUserStore{users: map[int64]*models.User{
		1: {ID: 1, OnboardingStatus: models.OnboardingPending, CurrentStep: models.StepIdentityVerification},
	}}
	codes := &fakeCodeStore{validCode: "654321"}
	svc := NewOnboardingService(users, codes, &fakeDocumentStore{}, fakeStorage{}, true, zerolog.Nop())

	user, err := svc.VerifyIdentity(context.Background(), 1, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingVerified, user.OnboardingStatus)
	assert.Zero(t, codes.consumed, "dev code must not hit the code store")
}

func TestVerifyIdentityRejectsOutOfOrderCall(t *testing.T) {
	svc, _, _, _ := newOnboardingFixture(models.OnboardingState{Status: models.OnboardingActive, Step: models.StepCompleted}, models.RoleStudent)

	_, err := svc.VerifyIdentity(context.Background(), 1, "654321")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestCompleteProfileActivatesStudent(t *testing.T) {
	svc, _, _, _ := newOnboardingFixture(models.OnboardingState{Status: models.OnboardingVerified, Step: models.StepProfileSetup}, models.RoleStudent)

	user, err := svc.CompleteProfile(context.Background(), 1, &dto.ProfileSetupRequest{FirstName: "Ada", LastName: "Y"})
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingActive, user.OnboardingStatus)
	assert.Equal(t, models.StepCompleted, user.CurrentStep)
	assert.Equal(t, "Ada", user.FirstName)
}

func TestCompleteProfileRefusesDocumentRoles(t *testing.T) {
	svc, _, _, _ := newOnboardingFixture(models.OnboardingState{Status: models.OnboardingVerified, Step: models.StepProfileSetup}, models.RoleCounselor)

	_, err := svc.CompleteProfile(context.Background(), 1, &dto.ProfileSetupRequest{FirstName: "C", LastName: "D"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestReviewApproveAndReject(t *testing.T) {
	state := models.OnboardingState{Status: models.OnboardingAuditPending, Step: models.StepReviewWait}

	svc, _, _, docs := newOnboardingFixture(state, models.RoleCounselor)
	user, err := svc.Review(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingActive, user.OnboardingStatus)
	assert.Equal(t, models.DocumentApproved, docs.status)

	svc, _, _, docs = newOnboardingFixture(state, models.RoleCounselor)
	user, err = svc.Review(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingRejected, user.OnboardingStatus)
	assert.Equal(t, models.DocumentRejected, docs.status)
}

func TestSubmitDocumentsRequiresFiles(t *testing.T) {
	svc, _, _, _ := newOnboardingFixture(models.OnboardingState{Status: models.OnboardingVerified, Step: models.StepProfileSetup}, models.RoleCounselor)

	_, err := svc.SubmitDocuments(context.Background(), 1, &dto.ProfileSetupRequest{FirstName: "C", LastName: "D"}, "id_proof", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitDocumentsStoresEachFile(t *testing.T) {
	svc, users, _, docs := newOnboardingFixture(models.OnboardingState{Status: models.OnboardingVerified, Step: models.StepProfileSetup}, models.RolePartner)

	files := []*multipart.FileHeader{{Filename: "a.pdf"}, {Filename: "b.pdf"}}
	user, err := svc.SubmitDocuments(context.Background(), 1, &dto.ProfileSetupRequest{FirstName: "P", LastName: "Q"}, "business_doc", files)
	require.NoError(t, err)

	assert.Equal(t, models.OnboardingAuditPending, user.OnboardingStatus)
	assert.Equal(t, models.StepReviewWait, user.CurrentStep)
	assert.Len(t, docs.docs, 2)
	assert.Equal(t, "business_doc", docs.docs[0].Type)
	assert.Equal(t, "P", users.users[1].FirstName)
}
