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

// DocumentRepository handles onboarding verification document records
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateDocument inserts a document record and returns its ID.
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("documents").
		Columns("user_id", "type", "path", "status", "created_at").
		Values(doc.UserID, doc.Type, doc.Path, models.DocumentPending, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return 0, fmt.Errorf("failed to build create document query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", doc.UserID).Msg("Error executing create document query")
		return 0, fmt.Errorf("error creating document: %w", err)
	}

	doc.ID = id
	doc.Status = models.DocumentPending
	doc.CreatedAt = now
	return id, nil
}

// GetDocumentByID retrieves a document by ID.
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	sql, args, err := r.sb.Select("id", "user_id", "type", "path", "status", "created_at").
		From("documents").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	doc := &models.Document{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.UserID, &doc.Type, &doc.Path, &doc.Status, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("documentID", id).Msg("Error scanning document row")
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	return doc, nil
}

// ListDocumentsByUser returns all documents uploaded by a user.
func (r *DocumentRepository) ListDocumentsByUser(ctx context.Context, userID int64) ([]*models.Document, error) {
	return r.listDocuments(ctx, squirrel.Eq{"user_id": userID})
}

// ListPendingDocuments returns all documents awaiting admin review.
func (r *DocumentRepository) ListPendingDocuments(ctx context.Context) ([]*models.Document, error) {
	return r.listDocuments(ctx, squirrel.Eq{"status": models.DocumentPending})
}

func (r *DocumentRepository) listDocuments(ctx context.Context, pred squirrel.Eq) ([]*models.Document, error) {
	sql, args, err := r.sb.Select("id", "user_id", "type", "path", "status", "created_at").
		From("documents").
		Where(pred).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing documents")
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Type, &doc.Path, &doc.Status, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDocumentStatus sets the review status on all of a user's pending
// documents when an admin decides.
func (r *DocumentRepository) UpdateDocumentStatus(ctx context.Context, userID int64, status models.DocumentStatus) error {
	sql, args, err := r.sb.Update("documents").
		Set("status", status).
		Where(squirrel.Eq{"user_id": userID, "status": models.DocumentPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update document status query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating document status")
		return fmt.Errorf("error updating document status: %w", err)
	}
	return nil
}
