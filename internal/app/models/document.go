package models

import (
	"time"
)

// DocumentStatus is the review status of an uploaded onboarding document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// Document defines an onboarding verification document based on the
// 'documents' table.
type Document struct {
	ID        int64          `json:"id" db:"id"`
	UserID    int64          `json:"userId" db:"user_id"`
	Type      string         `json:"type" db:"type"` // id_proof, business_doc, compliance_form
	Path      string         `json:"path" db:"path"`
	Status    DocumentStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}
