package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/websocket"
)

type fakeForumStore struct {
	posts   map[int64]*models.Post
	replies []*models.Reply
	deleted []int64
	nextID  int64
}

func newFakeForumStore() *fakeForumStore {
	return &fakeForumStore{posts: make(map[int64]*models.Post)}
}

func (f *fakeForumStore) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return post.ID, nil
}

func (f *fakeForumStore) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

func (f *fakeForumStore) ListPosts(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	var all []*models.Post
	for _, p := range f.posts {
		all = append(all, p)
	}
	return all, int64(len(all)), nil
}

func (f *fakeForumStore) DeletePost(ctx context.Context, postID int64) error {
	delete(f.posts, postID)
	f.deleted = append(f.deleted, postID)
	return nil
}

func (f *fakeForumStore) CreateReply(ctx context.Context, reply *models.Reply) (int64, error) {
	reply.ID = int64(len(f.replies) + 1)
	f.replies = append(f.replies, reply)
	return reply.ID, nil
}

func (f *fakeForumStore) ListRepliesByPost(ctx context.Context, postID int64) ([]*models.Reply, error) {
	var out []*models.Reply
	for _, r := range f.replies {
		if r.PostID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBroadcaster struct {
	roles    []string
	events   []string
	payloads []interface{}
}

func (f *fakeBroadcaster) BroadcastToRole(role, event string, payload interface{}) {
	f.roles = append(f.roles, role)
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}

func TestCreatePostBroadcastsOnSevereRisk(t *testing.T) {
	store := newFakeForumStore()
	broadcaster := &fakeBroadcaster{}
	provider := &fakeProvider{classifyResult: ai.RiskAssessment{RiskLevel: models.RiskSevere, Reason: "crisis language"}}
	svc := NewForumService(store, provider, broadcaster, zerolog.Nop())

	post, err := svc.CreatePost(context.Background(), 7, &dto.CreatePostRequest{
		Title:   "I can't take it anymore",
		Content: "everything feels hopeless",
	})
	require.NoError(t, err)
	require.NotZero(t, post.ID)

	assert.Equal(t, 1, provider.classifyCalls)
	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, string(models.RoleAdmin), broadcaster.roles[0])
	assert.Equal(t, websocket.EventAdminRiskAlert, broadcaster.events[0])

	alert, ok := broadcaster.payloads[0].(websocket.RiskAlert)
	require.True(t, ok)
	assert.Equal(t, "post", alert.Type)
	assert.Equal(t, post.ID, alert.ID)
	assert.Equal(t, int64(7), alert.UserID)
	assert.Equal(t, "crisis language", alert.Reason)
}

func TestCreatePostSkipsBroadcastOnLowRisk(t *testing.T) {
	store := newFakeForumStore()
	broadcaster := &fakeBroadcaster{}
	provider := &fakeProvider{classifyResult: ai.RiskAssessment{RiskLevel: models.RiskLow, Reason: "nothing concerning"}}
	svc := NewForumService(store, provider, broadcaster, zerolog.Nop())

	_, err := svc.CreatePost(context.Background(), 7, &dto.CreatePostRequest{Title: "Study tips", Content: "Pomodoro works for me"})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.classifyCalls)
	assert.Empty(t, broadcaster.events)
}

func TestCreateReplyRequiresExistingPost(t *testing.T) {
	svc := NewForumService(newFakeForumStore(), &fakeProvider{}, &fakeBroadcaster{}, zerolog.Nop())

	_, err := svc.CreateReply(context.Background(), 1, 99, &dto.CreateReplyRequest{Content: "hang in there"})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestDeletePostPermissions(t *testing.T) {
	store := newFakeForumStore()
	svc := NewForumService(store, &fakeProvider{}, &fakeBroadcaster{}, zerolog.Nop())

	post, err := svc.CreatePost(context.Background(), 5, &dto.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), post.ID, 6, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeletePost(context.Background(), post.ID, 6, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, []int64{post.ID}, store.deleted)
}
