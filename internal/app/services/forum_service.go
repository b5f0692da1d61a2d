package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/websocket"
)

// ForumStore is the post persistence surface.
type ForumStore interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error)
	DeletePost(ctx context.Context, postID int64) error
	CreateReply(ctx context.Context, reply *models.Reply) (int64, error)
	ListRepliesByPost(ctx context.Context, postID int64) ([]*models.Reply, error)
}

// AlertBroadcaster pushes real-time events to connected clients by role.
type AlertBroadcaster interface {
	BroadcastToRole(role, event string, payload interface{})
}

const classifyTimeout = 10 * time.Second

// ForumService handles the peer-support forum, including crisis screening of
// every new post.
type ForumService struct {
	store       ForumStore
	provider    ai.Provider
	broadcaster AlertBroadcaster
	logger      zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(store ForumStore, provider ai.Provider, broadcaster AlertBroadcaster, logger zerolog.Logger) *ForumService {
	return &ForumService{
		store:       store,
		provider:    provider,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreatePost persists the post, then classifies its text for crisis risk.
// A severe classification pushes an alert to every connected admin. The
// post is stored and returned before classification runs, so risk analysis
// can never fail or delay the submission.
func (s *ForumService) CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    userID,
		Title:       req.Title,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}
	if _, err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.screenPost(ctx, post)

	return post, nil
}

// screenPost classifies the post text and alerts admins on severe risk.
// Classification never returns an error; provider failures degrade to the
// keyword fallback inside the provider itself.
func (s *ForumService) screenPost(ctx context.Context, post *models.Post) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	assessment := s.provider.Classify(ctx, post.Title+" "+post.Content)
	if assessment.RiskLevel != models.RiskSevere {
		return
	}

	s.logger.Warn().
		Int64("postID", post.ID).
		Int64("userID", post.AuthorID).
		Str("reason", assessment.Reason).
		Msg("Severe risk detected in forum post")

	s.broadcaster.BroadcastToRole(string(models.RoleAdmin), websocket.EventAdminRiskAlert, websocket.RiskAlert{
		Type:      "post",
		ID:        post.ID,
		UserID:    post.AuthorID,
		Content:   post.Content,
		Reason:    assessment.Reason,
		Timestamp: time.Now(),
	})
}

// GetPost returns a post with its replies.
func (s *ForumService) GetPost(ctx context.Context, postID int64) (*models.Post, []*models.Reply, error) {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	replies, err := s.store.ListRepliesByPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, replies, nil
}

// ListPosts returns a page of posts newest first plus the total count.
func (s *ForumService) ListPosts(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	return s.store.ListPosts(ctx, offset, limit)
}

// CreateReply adds a reply to an existing post.
func (s *ForumService) CreateReply(ctx context.Context, userID, postID int64, req *dto.CreateReplyRequest) (*models.Reply, error) {
	if _, err := s.store.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		PostID:      postID,
		AuthorID:    userID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}
	if _, err := s.store.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *ForumService) DeletePost(ctx context.Context, postID, userID int64, role models.RoleType) error {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return s.store.DeletePost(ctx, postID)
}
