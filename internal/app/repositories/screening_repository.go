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

// ScreeningRepository handles screening assessment database operations
type ScreeningRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScreeningRepository creates a new ScreeningRepository
func NewScreeningRepository(db *pgxpool.Pool) *ScreeningRepository {
	return &ScreeningRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAssessment inserts a screening assessment and returns its ID.
func (r *ScreeningRepository) CreateAssessment(ctx context.Context, assessment *models.ScreeningAssessment) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("screening_assessments").
		Columns("user_id", "score", "risk_level", "answers", "ai_analysis", "created_at").
		Values(assessment.UserID, assessment.Score, assessment.RiskLevel, assessment.Answers, assessment.AIAnalysis, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create assessment SQL")
		return 0, fmt.Errorf("failed to build create assessment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", assessment.UserID).Msg("Error executing create assessment query")
		return 0, fmt.Errorf("error creating assessment: %w", err)
	}

	assessment.ID = id
	assessment.CreatedAt = now
	return id, nil
}

// GetLatestAssessmentByUser returns the user's most recent assessment.
func (r *ScreeningRepository) GetLatestAssessmentByUser(ctx context.Context, userID int64) (*models.ScreeningAssessment, error) {
	sql, args, err := r.sb.Select("id", "user_id", "score", "risk_level", "answers", "ai_analysis", "created_at").
		From("screening_assessments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest assessment query: %w", err)
	}

	assessment := &models.ScreeningAssessment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&assessment.ID, &assessment.UserID, &assessment.Score, &assessment.RiskLevel,
		&assessment.Answers, &assessment.AIAnalysis, &assessment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning assessment row")
		return nil, fmt.Errorf("error retrieving assessment: %w", err)
	}
	return assessment, nil
}

// ListAssessmentsByUser returns the user's assessments newest first.
func (r *ScreeningRepository) ListAssessmentsByUser(ctx context.Context, userID int64) ([]*models.ScreeningAssessment, error) {
	sql, args, err := r.sb.Select("id", "user_id", "score", "risk_level", "answers", "ai_analysis", "created_at").
		From("screening_assessments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list assessments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing assessments")
		return nil, fmt.Errorf("error listing assessments: %w", err)
	}
	defer rows.Close()

	assessments := []*models.ScreeningAssessment{}
	for rows.Next() {
		assessment := &models.ScreeningAssessment{}
		if err := rows.Scan(
			&assessment.ID, &assessment.UserID, &assessment.Score, &assessment.RiskLevel,
			&assessment.Answers, &assessment.AIAnalysis, &assessment.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning assessment row: %w", err)
		}
		assessments = append(assessments, assessment)
	}
	return assessments, rows.Err()
}

// CountAssessments counts all assessments.
func (r *ScreeningRepository) CountAssessments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM screening_assessments").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting assessments: %w", err)
	}
	return count, nil
}
