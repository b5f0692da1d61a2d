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

// ResourceRepository handles self-help resource database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateResource inserts a resource and returns its ID.
func (r *ResourceRepository) CreateResource(ctx context.Context, res *models.Resource) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("resources").
		Columns("title", "description", "content", "type", "category", "language", "created_at").
		Values(res.Title, res.Description, res.Content, res.Type, res.Category, res.Language, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return 0, fmt.Errorf("failed to build create resource query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", res.Title).Msg("Error executing create resource query")
		return 0, fmt.Errorf("error creating resource: %w", err)
	}

	res.ID = id
	res.CreatedAt = now
	return id, nil
}

// GetResourceByID retrieves a resource by ID.
func (r *ResourceRepository) GetResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	sql, args, err := r.sb.Select("id", "title", "description", "content", "type", "category", "language", "created_at").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	res := &models.Resource{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&res.ID, &res.Title, &res.Description, &res.Content,
		&res.Type, &res.Category, &res.Language, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error scanning resource row")
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}
	return res, nil
}

// ListResources returns resources newest first, optionally filtered by type
// and category.
func (r *ResourceRepository) ListResources(ctx context.Context, resourceType, category string) ([]*models.Resource, error) {
	builder := r.sb.Select("id", "title", "description", "content", "type", "category", "language", "created_at").
		From("resources").
		OrderBy("created_at DESC")
	if resourceType != "" {
		builder = builder.Where(squirrel.Eq{"type": resourceType})
	}
	if category != "" {
		builder = builder.Where(squirrel.Eq{"category": category})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing resources")
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	resources := []*models.Resource{}
	for rows.Next() {
		res := &models.Resource{}
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Description, &res.Content,
			&res.Type, &res.Category, &res.Language, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// DeleteResource removes a resource.
func (r *ResourceRepository) DeleteResource(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error deleting resource")
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountResources counts all resources.
func (r *ResourceRepository) CountResources(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM resources").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting resources: %w", err)
	}
	return count, nil
}
