package dto

import (
	"time"

	"github.com/aylin/campuswell/internal/app/models"
)

// CreatePostRequest is the payload for a new forum post.
type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Content     string `json:"content" binding:"required,min=1"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// CreateReplyRequest is the payload for a new reply to a post.
type CreateReplyRequest struct {
	Content     string `json:"content" binding:"required,min=1"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// PostResponse is the list/detail view of a forum post. The author name is
// withheld for anonymous posts.
type PostResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	IsAnonymous bool            `json:"isAnonymous"`
	IsFlagged   bool            `json:"isFlagged"`
	AuthorName  string          `json:"authorName" example:"jdoe"`
	ReplyCount  int             `json:"replyCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	Replies     []ReplyResponse `json:"replies,omitempty"`
}

// ReplyResponse is the view of a forum reply.
type ReplyResponse struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"postId"`
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"isAnonymous"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

const anonymousName = "Anonymous"

// NewPostResponse maps a post model to its response view.
func NewPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		IsAnonymous: post.IsAnonymous,
		IsFlagged:   post.IsFlagged,
		AuthorName:  anonymousName,
		ReplyCount:  post.ReplyCount,
		CreatedAt:   post.CreatedAt,
	}
	if !post.IsAnonymous && post.Author != nil {
		resp.AuthorName = post.Author.Username
	}
	return resp
}

// NewReplyResponse maps a reply model to its response view.
func NewReplyResponse(reply *models.Reply) ReplyResponse {
	resp := ReplyResponse{
		ID:          reply.ID,
		PostID:      reply.PostID,
		Content:     reply.Content,
		IsAnonymous: reply.IsAnonymous,
		AuthorName:  anonymousName,
		CreatedAt:   reply.CreatedAt,
	}
	if !reply.IsAnonymous && reply.Author != nil {
		resp.AuthorName = reply.Author.Username
	}
	return resp
}
