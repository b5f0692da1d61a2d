package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/filestorage"
)

// devVerificationCode always verifies in non-production setups where no
// email delivery is configured.
const devVerificationCode = "123456"

// OnboardingUserStore is the user persistence surface for onboarding.
type OnboardingUserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateOnboarding(ctx context.Context, userID int64, state models.OnboardingState) error
	UpdateRole(ctx context.Context, userID int64, role models.RoleType) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phoneNumber *string) error
}

// OnboardingCodeStore validates verification codes.
type OnboardingCodeStore interface {
	ConsumeVerificationCode(ctx context.Context, userID int64, code string) error
}

// OnboardingDocumentStore persists uploaded verification documents.
type OnboardingDocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) (int64, error)
	ListDocumentsByUser(ctx context.Context, userID int64) ([]*models.Document, error)
	UpdateDocumentStatus(ctx context.Context, userID int64, status models.DocumentStatus) error
}

// OnboardingService drives users through the onboarding state machine. Every
// step goes through the transition table; out-of-order requests are rejected
// instead of silently reinterpreted.
type OnboardingService struct {
	userStore OnboardingUserStore
	codeStore OnboardingCodeStore
	docStore  OnboardingDocumentStore
	storage   filestorage.Storage
	devMode   bool
	logger    zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService. In dev mode the
// static code 123456 is accepted so the flow works without SMTP.
func NewOnboardingService(
	userStore OnboardingUserStore,
	codeStore OnboardingCodeStore,
	docStore OnboardingDocumentStore,
	storage filestorage.Storage,
	devMode bool,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		userStore: userStore,
		codeStore: codeStore,
		docStore:  docStore,
		storage:   storage,
		devMode:   devMode,
		logger:    logger,
	}
}

// VerifyIdentity consumes the emailed code and advances to role selection.
func (s *OnboardingService) VerifyIdentity(ctx context.Context, userID int64, code string) (*models.User, error) {
	user, next, err := s.prepareTransition(ctx, userID, models.EventVerifyIdentity)
	if err != nil {
		return nil, err
	}

	if !(s.devMode && code == devVerificationCode) {
		if err := s.codeStore.ConsumeVerificationCode(ctx, userID, code); err != nil {
			return nil, err
		}
	}

	return s.applyTransition(ctx, user, next)
}

// SelectRole records the chosen role and advances to profile setup.
func (s *OnboardingService) SelectRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}

	user, next, err := s.prepareTransition(ctx, userID, models.EventSelectRole)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.UpdateRole(ctx, userID, models.RoleType(role)); err != nil {
		return nil, err
	}
	user.RoleType = models.RoleType(role)

	return s.applyTransition(ctx, user, next)
}

// CompleteProfile stores the profile fields. Students become active
// immediately; roles that need document review must call SubmitDocuments
// instead.
func (s *OnboardingService) CompleteProfile(ctx context.Context, userID int64, req *dto.ProfileSetupRequest) (*models.User, error) {
	user, next, err := s.prepareTransition(ctx, userID, models.EventCompleteProfile)
	if err != nil {
		return nil, err
	}

	if user.RoleType != models.RoleStudent && user.RoleType != models.RoleAdmin {
		// Counselors and partners go through document review.
		return nil, fmt.Errorf("%w: role %s requires document submission", apperrors.ErrInvalidTransition, user.RoleType)
	}

	if err := s.userStore.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.PhoneNumber); err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber

	return s.applyTransition(ctx, user, next)
}

// SubmitDocuments stores profile fields plus verification documents, and
// parks the account in audit_pending until an admin decides.
func (s *OnboardingService) SubmitDocuments(ctx context.Context, userID int64, req *dto.ProfileSetupRequest, docType string, files []*multipart.FileHeader) (*models.User, error) {
	user, next, err := s.prepareTransition(ctx, userID, models.EventSubmitDocuments)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, apperrors.NewValidationError("documents", "at least one document is required")
	}

	if err := s.userStore.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.PhoneNumber); err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber

	for _, fileHeader := range files {
		path, err := s.storage.SaveDocument(fileHeader)
		if err != nil {
			return nil, err
		}
		doc := &models.Document{UserID: userID, Type: docType, Path: path}
		if _, err := s.docStore.CreateDocument(ctx, doc); err != nil {
			return nil, err
		}
	}

	return s.applyTransition(ctx, user, next)
}

// Review is the admin decision on an audit_pending user. Approval activates
// the account; rejection is terminal.
func (s *OnboardingService) Review(ctx context.Context, userID int64, approve bool) (*models.User, error) {
	event := models.EventApprove
	docStatus := models.DocumentApproved
	if !approve {
		event = models.EventReject
		docStatus = models.DocumentRejected
	}

	user, next, err := s.prepareTransition(ctx, userID, event)
	if err != nil {
		return nil, err
	}

	if err := s.docStore.UpdateDocumentStatus(ctx, userID, docStatus); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Bool("approved", approve).
		Msg("Onboarding review decided")
	return s.applyTransition(ctx, user, next)
}

// Status returns the user's current onboarding position together with any
// uploaded documents.
func (s *OnboardingService) Status(ctx context.Context, userID int64) (*models.User, []*models.Document, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	docs, err := s.docStore.ListDocumentsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, docs, nil
}

// prepareTransition loads the user and checks that the event is legal from
// their current state.
func (s *OnboardingService) prepareTransition(ctx context.Context, userID int64, event models.OnboardingEvent) (*models.User, models.OnboardingState, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, models.OnboardingState{}, err
	}

	next, ok := models.NextOnboardingState(user.OnboardingState(), event)
	if !ok {
		s.logger.Warn().
			Int64("userID", userID).
			Str("status", string(user.OnboardingStatus)).
			Str("step", string(user.CurrentStep)).
			Str("event", string(event)).
			Msg("Rejected onboarding transition")
		return nil, models.OnboardingState{}, fmt.Errorf("%w: cannot %s from %s/%s",
			apperrors.ErrInvalidTransition, event, user.OnboardingStatus, user.CurrentStep)
	}
	return user, next, nil
}

func (s *OnboardingService) applyTransition(ctx context.Context, user *models.User, next models.OnboardingState) (*models.User, error) {
	if err := s.userStore.UpdateOnboarding(ctx, user.ID, next); err != nil {
		return nil, err
	}
	user.OnboardingStatus = next.Status
	user.CurrentStep = next.Step
	user.UpdatedAt = time.Now()
	return user, nil
}
