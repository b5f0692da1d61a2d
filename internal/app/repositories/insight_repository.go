package repositories

import (
	"context"
	"encoding/json"
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

// InsightRepository handles the day-keyed daily insight cache. The table has
// a unique constraint on insight_date, so concurrent generation attempts for
// the same day collapse to a single stored row.
type InsightRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInsightRepository creates a new InsightRepository
func NewInsightRepository(db *pgxpool.Pool) *InsightRepository {
	return &InsightRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetInsightByDate returns the cached insight for a calendar day.
func (r *InsightRepository) GetInsightByDate(ctx context.Context, day time.Time) (*models.DailyInsight, error) {
	sql, args, err := r.sb.Select("id", "insight_date", "summary", "top_concerns", "recommendation", "created_at").
		From("daily_insights").
		Where(squirrel.Eq{"insight_date": day.Format("2006-01-02")}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get insight query: %w", err)
	}

	insight := &models.DailyInsight{}
	var concernsJSON []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&insight.ID, &insight.InsightDate, &insight.Summary, &concernsJSON,
		&insight.Recommendation, &insight.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning insight row")
		return nil, fmt.Errorf("error retrieving insight: %w", err)
	}

	if err := json.Unmarshal(concernsJSON, &insight.TopConcerns); err != nil {
		logger.Error().Err(err).Int64("insightID", insight.ID).Msg("Error decoding top concerns")
		return nil, fmt.Errorf("error decoding top concerns: %w", err)
	}
	return insight, nil
}

// SaveInsight stores the insight for its day unless a row for that day
// already exists. Losing the insert race is not an error; callers re-read
// the winning row with GetInsightByDate.
func (r *InsightRepository) SaveInsight(ctx context.Context, insight *models.DailyInsight) error {
	concernsJSON, err := json.Marshal(insight.TopConcerns)
	if err != nil {
		return fmt.Errorf("error encoding top concerns: %w", err)
	}

	sql, args, err := r.sb.Insert("daily_insights").
		Columns("insight_date", "summary", "top_concerns", "recommendation", "created_at").
		Values(insight.InsightDate.Format("2006-01-02"), insight.Summary, concernsJSON, insight.Recommendation, time.Now()).
		Suffix("ON CONFLICT (insight_date) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save insight SQL")
		return fmt.Errorf("failed to build save insight query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing save insight query")
		return fmt.Errorf("error saving insight: %w", err)
	}
	return nil
}
