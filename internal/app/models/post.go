package models

import (
	"time"
)

// Post defines a peer-support forum post based on the 'posts' table.
// Posts are append-only; nothing in the application mutates them after
// creation except the moderation flag.
type Post struct {
	ID          int64     `json:"id" db:"id"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
	IsFlagged   bool      `json:"isFlagged" db:"is_flagged"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Author     *User `json:"author,omitempty"` // Relation, no db tag
	ReplyCount int   `json:"replyCount" db:"-"`
}

// Reply defines a forum reply based on the 'replies' table. Append-only.
type Reply struct {
	ID          int64     `json:"id" db:"id"`
	PostID      int64     `json:"postId" db:"post_id"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	Content     string    `json:"content" db:"content"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Author *User `json:"author,omitempty"` // Relation, no db tag
}
