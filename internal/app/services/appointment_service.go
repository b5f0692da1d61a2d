package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

// AppointmentStore is the appointment persistence surface.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) (int64, error)
	GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error)
	ListAppointmentsForStudent(ctx context.Context, studentID int64) ([]*models.Appointment, error)
	ListAppointmentsForCounselor(ctx context.Context, counselorID int64) ([]*models.Appointment, error)
	ListAllAppointments(ctx context.Context) ([]*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, status *models.AppointmentStatus, counselorID *int64, date *time.Time, notes *string) error
}

// AppointmentUserStore resolves counselors for booking and listing.
type AppointmentUserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListCounselors(ctx context.Context) ([]*models.User, error)
}

// AppointmentService handles counseling appointment booking and lifecycle.
type AppointmentService struct {
	store     AppointmentStore
	userStore AppointmentUserStore
	logger    zerolog.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(store AppointmentStore, userStore AppointmentUserStore, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		store:     store,
		userStore: userStore,
		logger:    logger,
	}
}

// Create books an appointment for a student. The counselor is optional at
// booking time; when given it must reference an actual counselor account.
func (s *AppointmentService) Create(ctx context.Context, studentID int64, req *dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if req.Date.Before(time.Now()) {
		return nil, apperrors.NewValidationError("date", "appointment date must be in the future")
	}

	if req.CounselorID != nil {
		counselor, err := s.userStore.GetUserByID(ctx, *req.CounselorID)
		if err != nil {
			return nil, apperrors.ErrCounselorNotFound
		}
		if counselor.RoleType != models.RoleCounselor {
			return nil, apperrors.ErrCounselorNotFound
		}
	}

	apptType := models.AppointmentType(req.Type)
	if req.Type == "" {
		apptType = models.AppointmentOnline
	}

	appt := &models.Appointment{
		StudentID:   studentID,
		CounselorID: req.CounselorID,
		Date:        req.Date,
		Type:        apptType,
		Notes:       req.Notes,
	}
	if _, err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appointmentID", appt.ID).Int64("studentID", studentID).Msg("Appointment booked")
	return appt, nil
}

// List returns the appointments visible to the caller: students see their
// own bookings, counselors their assignments, admins everything.
func (s *AppointmentService) List(ctx context.Context, userID int64, role models.RoleType) ([]*models.Appointment, error) {
	switch role {
	case models.RoleAdmin:
		return s.store.ListAllAppointments(ctx)
	case models.RoleCounselor:
		return s.store.ListAppointmentsForCounselor(ctx, userID)
	default:
		return s.store.ListAppointmentsForStudent(ctx, userID)
	}
}

// Update applies a partial update. Students may only cancel their own
// appointments; counselors and admins may change status, assignment, date
// and notes.
func (s *AppointmentService) Update(ctx context.Context, apptID, userID int64, role models.RoleType, req *dto.UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.store.GetAppointmentByID(ctx, apptID)
	if err != nil {
		return nil, err
	}

	var status *models.AppointmentStatus
	if req.Status != nil {
		if !models.ValidAppointmentStatus(*req.Status) {
			return nil, apperrors.NewValidationError("status", "unknown appointment status")
		}
		converted := models.AppointmentStatus(*req.Status)
		status = &converted
	}

	switch role {
	case models.RoleAdmin, models.RoleCounselor:
		if role == models.RoleCounselor && (appt.CounselorID == nil || *appt.CounselorID != userID) {
			return nil, apperrors.ErrPermissionDenied
		}
	default:
		if appt.StudentID != userID {
			return nil, apperrors.ErrPermissionDenied
		}
		// Students can only cancel.
		if status == nil || *status != models.AppointmentCancelled ||
			req.CounselorID != nil || req.Date != nil || req.Notes != nil {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	if err := s.store.UpdateAppointment(ctx, apptID, status, req.CounselorID, req.Date, req.Notes); err != nil {
		return nil, err
	}
	return s.store.GetAppointmentByID(ctx, apptID)
}

// Counselors returns the public listing of counselors students can book.
func (s *AppointmentService) Counselors(ctx context.Context) ([]dto.CounselorResponse, error) {
	users, err := s.userStore.ListCounselors(ctx)
	if err != nil {
		return nil, err
	}

	counselors := make([]dto.CounselorResponse, 0, len(users))
	for _, user := range users {
		counselors = append(counselors, dto.CounselorResponse{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		})
	}
	return counselors, nil
}
