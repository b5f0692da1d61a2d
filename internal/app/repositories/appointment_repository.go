package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/logger"
)

// AppointmentRepository handles counseling appointment database operations
type AppointmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAppointment inserts an appointment and returns its ID.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appt *models.Appointment) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("appointments").
		Columns("student_id", "counselor_id", "date", "status", "type", "notes", "created_at").
		Values(appt.StudentID, appt.CounselorID, appt.Date, models.AppointmentPending, appt.Type, appt.Notes, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create appointment SQL")
		return 0, fmt.Errorf("failed to build create appointment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("studentID", appt.StudentID).Msg("Error executing create appointment query")
		return 0, fmt.Errorf("error creating appointment: %w", err)
	}

	appt.ID = id
	appt.Status = models.AppointmentPending
	appt.CreatedAt = now
	return id, nil
}

// GetAppointmentByID retrieves an appointment by ID.
func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "counselor_id", "date", "status", "type", "notes", "created_at").
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get appointment query: %w", err)
	}

	appt := &models.Appointment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&appt.ID, &appt.StudentID, &appt.CounselorID, &appt.Date,
		&appt.Status, &appt.Type, &appt.Notes, &appt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		logger.Error().Err(err).Int64("appointmentID", id).Msg("Error scanning appointment row")
		return nil, fmt.Errorf("error retrieving appointment: %w", err)
	}
	return appt, nil
}

// ListAppointmentsForStudent returns a student's appointments newest first.
func (r *AppointmentRepository) ListAppointmentsForStudent(ctx context.Context, studentID int64) ([]*models.Appointment, error) {
	return r.listAppointments(ctx, squirrel.Eq{"student_id": studentID})
}

// ListAppointmentsForCounselor returns a counselor's assigned appointments
// newest first.
func (r *AppointmentRepository) ListAppointmentsForCounselor(ctx context.Context, counselorID int64) ([]*models.Appointment, error) {
	return r.listAppointments(ctx, squirrel.Eq{"counselor_id": counselorID})
}

// ListAllAppointments returns every appointment, newest first. Admin only.
func (r *AppointmentRepository) ListAllAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return r.listAppointments(ctx, nil)
}

func (r *AppointmentRepository) listAppointments(ctx context.Context, pred squirrel.Eq) ([]*models.Appointment, error) {
	builder := r.sb.Select("id", "student_id", "counselor_id", "date", "status", "type", "notes", "created_at").
		From("appointments").
		OrderBy("date DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list appointments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing appointments")
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	appts := []*models.Appointment{}
	for rows.Next() {
		appt := &models.Appointment{}
		if err := rows.Scan(
			&appt.ID, &appt.StudentID, &appt.CounselorID, &appt.Date,
			&appt.Status, &appt.Type, &appt.Notes, &appt.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

// UpdateAppointment applies a partial update. Only non-nil fields change.
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, id int64, status *models.AppointmentStatus, counselorID *int64, date *time.Time, notes *string) error {
	builder := r.sb.Update("appointments").Where(squirrel.Eq{"id": id})
	changed := false
	if status != nil {
		builder = builder.Set("status", *status)
		changed = true
	}
	if counselorID != nil {
		builder = builder.Set("counselor_id", *counselorID)
		changed = true
	}
	if date != nil {
		builder = builder.Set("date", *date)
		changed = true
	}
	if notes != nil {
		builder = builder.Set("notes", *notes)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update appointment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("appointmentID", id).Msg("Error updating appointment")
		return fmt.Errorf("error updating appointment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	return nil
}

// CountAppointments counts all appointments.
func (r *AppointmentRepository) CountAppointments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM appointments").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting appointments: %w", err)
	}
	return count, nil
}
