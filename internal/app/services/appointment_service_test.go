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
)

type fakeAppointmentStore struct {
	appts  map[int64]*models.Appointment
	nextID int64
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appts: make(map[int64]*models.Appointment)}
}

func (f *fakeAppointmentStore) CreateAppointment(ctx context.Context, appt *models.Appointment) (int64, error) {
	f.nextID++
	appt.ID = f.nextID
	if appt.Status == "" {
		appt.Status = models.AppointmentPending
	}
	f.appts[appt.ID] = appt
	return appt.ID, nil
}

func (f *fakeAppointmentStore) GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentStore) ListAppointmentsForStudent(ctx context.Context, studentID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range f.appts {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListAppointmentsForCounselor(ctx context.Context, counselorID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range f.appts {
		if a.CounselorID != nil && *a.CounselorID == counselorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListAllAppointments(ctx context.Context) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range f.appts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentStore) UpdateAppointment(ctx context.Context, id int64, status *models.AppointmentStatus, counselorID *int64, date *time.Time, notes *string) error {
	appt := f.appts[id]
	if status != nil {
		appt.Status = *status
	}
	if counselorID != nil {
		appt.CounselorID = counselorID
	}
	if date != nil {
		appt.Date = *date
	}
	if notes != nil {
		appt.Notes = notes
	}
	return nil
}

type fakeAppointmentUserStore struct {
	users map[int64]*models.User
}

func (f *fakeAppointmentUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAppointmentUserStore) ListCounselors(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.RoleType == models.RoleCounselor {
			out = append(out, u)
		}
	}
	return out, nil
}

func newAppointmentFixture() (*AppointmentService, *fakeAppointmentStore) {
	store := newFakeAppointmentStore()
	users := &fakeAppointmentUserStore{users: map[int64]*models.User{
		10: {ID: 10, RoleType: models.RoleCounselor, FirstName: "Kim", LastName: "Lee"},
		20: {ID: 20, RoleType: models.RoleStudent},
	}}
	return NewAppointmentService(store, users, zerolog.Nop()), store
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc, _ := newAppointmentFixture()
	future := time.Now().Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), 20, &dto.CreateAppointmentRequest{Date: time.Now().Add(-time.Hour)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	unknown := int64(99)
	_, err = svc.Create(context.Background(), 20, &dto.CreateAppointmentRequest{Date: future, CounselorID: &unknown})
	assert.ErrorIs(t, err, apperrors.ErrCounselorNotFound)

	student := int64(20)
	_, err = svc.Create(context.Background(), 20, &dto.CreateAppointmentRequest{Date: future, CounselorID: &student})
	assert.ErrorIs(t, err, apperrors.ErrCounselorNotFound, "only counselor accounts can be booked")

	appt, err := svc.Create(context.Background(), 20, &dto.CreateAppointmentRequest{Date: future})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentOnline, appt.Type, "type defaults to online")
	assert.Nil(t, appt.CounselorID)
}

func TestStudentsMayOnlyCancelTheirOwnAppointments(t *testing.T) {
	svc, store := newAppointmentFixture()
	counselorID := int64(10)
	appt := &models.Appointment{StudentID: 20, CounselorID: &counselorID, Date: time.Now().Add(time.Hour)}
	_, err := store.CreateAppointment(context.Background(), appt)
	require.NoError(t, err)

	cancelled := string(models.AppointmentCancelled)
	confirmed := string(models.AppointmentConfirmed)

	_, err = svc.Update(context.Background(), appt.ID, 21, models.RoleStudent, &dto.UpdateAppointmentRequest{Status: &cancelled})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "not the booking student")

	_, err = svc.Update(context.Background(), appt.ID, 20, models.RoleStudent, &dto.UpdateAppointmentRequest{Status: &confirmed})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "students cannot confirm")

	note := "bring notes"
	_, err = svc.Update(context.Background(), appt.ID, 20, models.RoleStudent, &dto.UpdateAppointmentRequest{Status: &cancelled, Notes: &note})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "cancel must not carry other fields")

	updated, err := svc.Update(context.Background(), appt.ID, 20, models.RoleStudent, &dto.UpdateAppointmentRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, updated.Status)
}

func TestCounselorMayOnlyTouchOwnAssignments(t *testing.T) {
	svc, store := newAppointmentFixture()
	counselorID := int64(10)
	assigned := &models.Appointment{StudentID: 20, CounselorID: &counselorID, Date: time.Now().Add(time.Hour)}
	unassigned := &models.Appointment{StudentID: 20, Date: time.Now().Add(time.Hour)}
	_, err := store.CreateAppointment(context.Background(), assigned)
	require.NoError(t, err)
	_, err = store.CreateAppointment(context.Background(), unassigned)
	require.NoError(t, err)

	confirmed := string(models.AppointmentConfirmed)

	_, err = svc.Update(context.Background(), unassigned.ID, 10, models.RoleCounselor, &dto.UpdateAppointmentRequest{Status: &confirmed})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(context.Background(), assigned.ID, 10, models.RoleCounselor, &dto.UpdateAppointmentRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)

	// Admins can claim the unassigned appointment for any counselor
	updated, err = svc.Update(context.Background(), unassigned.ID, 1, models.RoleAdmin, &dto.UpdateAppointmentRequest{Status: &confirmed, CounselorID: &counselorID})
	require.NoError(t, err)
	assert.Equal(t, counselorID, *updated.CounselorID)
}

func TestListScopesByRole(t *testing.T) {
	svc, store := newAppointmentFixture()
	counselorID := int64(10)
	_, err := store.CreateAppointment(context.Background(), &models.Appointment{StudentID: 20, CounselorID: &counselorID})
	require.NoError(t, err)
	_, err = store.CreateAppointment(context.Background(), &models.Appointment{StudentID: 21})
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), 20, models.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := svc.List(context.Background(), 10, models.RoleCounselor)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	all, err := svc.List(context.Background(), 1, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
