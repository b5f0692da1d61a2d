package dto

import (
	"time"
)

// CreateAppointmentRequest is the payload for booking an appointment.
type CreateAppointmentRequest struct {
	CounselorID *int64    `json:"counselorId,omitempty"`
	Date        time.Time `json:"date" binding:"required"`
	Type        string    `json:"type" binding:"omitempty,oneof=online in-person" example:"online"`
	Notes       *string   `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// UpdateAppointmentRequest mutates the status or assignment of an appointment.
type UpdateAppointmentRequest struct {
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	CounselorID *int64     `json:"counselorId,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Notes       *string    `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// CounselorResponse is the public listing view of a counselor.
type CounselorResponse struct {
	ID        int64  `json:"id" example:"4"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Smith"`
	Email     string `json:"email" example:"jsmith@campus.edu"`
}
