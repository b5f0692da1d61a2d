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

// PostRepository handles forum post and reply database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePost inserts a forum post and returns its ID.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("posts").
		Columns("author_id", "title", "content", "is_anonymous", "is_flagged", "created_at").
		Values(post.AuthorID, post.Title, post.Content, post.IsAnonymous, false, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("authorID", post.AuthorID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return id, nil
}

// GetPostByID retrieves a post with its author joined in.
func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.author_id", "p.title", "p.content", "p.is_anonymous", "p.is_flagged", "p.created_at",
		"u.username", "u.first_name", "u.last_name",
		"(SELECT COUNT(*) FROM replies WHERE post_id = p.id)").
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post := &models.Post{Author: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.IsAnonymous, &post.IsFlagged, &post.CreatedAt,
		&post.Author.Username, &post.Author.FirstName, &post.Author.LastName,
		&post.ReplyCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	post.Author.ID = post.AuthorID
	return post, nil
}

// ListPosts returns a page of posts newest first, with authors and reply
// counts, plus the total count for pagination.
func (r *PostRepository) ListPosts(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting posts")
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	sql, args, err := r.sb.Select(
		"p.id", "p.author_id", "p.title", "p.content", "p.is_anonymous", "p.is_flagged", "p.created_at",
		"u.username", "u.first_name", "u.last_name",
		"(SELECT COUNT(*) FROM replies WHERE post_id = p.id)").
		From("posts p").
		Join("users u ON u.id = p.author_id").
		OrderBy("p.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing posts")
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{Author: &models.User{}}
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.IsAnonymous, &post.IsFlagged, &post.CreatedAt,
			&post.Author.Username, &post.Author.FirstName, &post.Author.LastName,
			&post.ReplyCount); err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		post.Author.ID = post.AuthorID
		posts = append(posts, post)
	}
	return posts, total, rows.Err()
}

// ListRecentPostTexts returns title+content of the newest posts, used as
// input to the daily institutional insight.
func (r *PostRepository) ListRecentPostTexts(ctx context.Context, limit int) ([]string, error) {
	sql, args, err := r.sb.Select("title || '. ' || content").
		From("posts").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent post texts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing recent post texts")
		return nil, fmt.Errorf("error listing recent post texts: %w", err)
	}
	defer rows.Close()

	texts := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("error scanning post text row: %w", err)
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// SetPostFlagged marks a post for moderator attention.
func (r *PostRepository) SetPostFlagged(ctx context.Context, postID int64, flagged bool) error {
	sql, args, err := r.sb.Update("posts").
		Set("is_flagged", flagged).
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build flag post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error flagging post")
		return fmt.Errorf("error flagging post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// DeletePost removes a post and its replies.
func (r *PostRepository) DeletePost(ctx context.Context, postID int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error deleting post")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// CountPosts counts all posts.
func (r *PostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}
	return count, nil
}

// CreateReply inserts a reply and returns its ID.
func (r *PostRepository) CreateReply(ctx context.Context, reply *models.Reply) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("replies").
		Columns("post_id", "author_id", "content", "is_anonymous", "created_at").
		Values(reply.PostID, reply.AuthorID, reply.Content, reply.IsAnonymous, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create reply SQL")
		return 0, fmt.Errorf("failed to build create reply query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("postID", reply.PostID).Msg("Error executing create reply query")
		return 0, fmt.Errorf("error creating reply: %w", err)
	}

	reply.ID = id
	reply.CreatedAt = now
	return id, nil
}

// ListRepliesByPost returns all replies on a post oldest first, with authors.
func (r *PostRepository) ListRepliesByPost(ctx context.Context, postID int64) ([]*models.Reply, error) {
	sql, args, err := r.sb.Select(
		"rp.id", "rp.post_id", "rp.author_id", "rp.content", "rp.is_anonymous", "rp.created_at",
		"u.username", "u.first_name", "u.last_name").
		From("replies rp").
		Join("users u ON u.id = rp.author_id").
		Where(squirrel.Eq{"rp.post_id": postID}).
		OrderBy("rp.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list replies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error listing replies")
		return nil, fmt.Errorf("error listing replies: %w", err)
	}
	defer rows.Close()

	replies := []*models.Reply{}
	for rows.Next() {
		reply := &models.Reply{Author: &models.User{}}
		if err := rows.Scan(
			&reply.ID, &reply.PostID, &reply.AuthorID, &reply.Content, &reply.IsAnonymous, &reply.CreatedAt,
			&reply.Author.Username, &reply.Author.FirstName, &reply.Author.LastName); err != nil {
			return nil, fmt.Errorf("error scanning reply row: %w", err)
		}
		reply.Author.ID = reply.AuthorID
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}
