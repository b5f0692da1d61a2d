package models

import (
	"time"
)

// AppointmentStatus is the lifecycle status of a counseling appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// ValidAppointmentStatus reports whether the given string is a known status.
func ValidAppointmentStatus(status string) bool {
	switch AppointmentStatus(status) {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// AppointmentType distinguishes online from in-person sessions.
type AppointmentType string

const (
	AppointmentOnline   AppointmentType = "online"
	AppointmentInPerson AppointmentType = "in-person"
)

// Appointment defines a counseling appointment based on the 'appointments'
// table. Status is mutated by counselor/admin actions only.
type Appointment struct {
	ID          int64             `json:"id" db:"id"`
	StudentID   int64             `json:"studentId" db:"student_id"`
	CounselorID *int64            `json:"counselorId,omitempty" db:"counselor_id"` // Nullable until assigned
	Date        time.Time         `json:"date" db:"date"`
	Status      AppointmentStatus `json:"status" db:"status"`
	Type        AppointmentType   `json:"type" db:"type"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`

	Student   *User `json:"student,omitempty"`   // Relation, no db tag
	Counselor *User `json:"counselor,omitempty"` // Relation, no db tag
}
