package models

import (
	"time"
)

// Resource defines an entry in the self-help resource library based on the
// 'resources' table.
type Resource struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content" db:"content"` // URL or inline text content
	Type        string    `json:"type" db:"type"`       // video, audio, article, guide
	Category    string    `json:"category" db:"category"`
	Language    string    `json:"language" db:"language"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
