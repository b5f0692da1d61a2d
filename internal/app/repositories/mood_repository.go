package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/pkg/logger"
)

// MoodRepository handles mood entry database operations
type MoodRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMoodRepository creates a new MoodRepository
func NewMoodRepository(db *pgxpool.Pool) *MoodRepository {
	return &MoodRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEntry inserts a mood entry and returns its ID.
func (r *MoodRepository) CreateEntry(ctx context.Context, entry *models.MoodEntry) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("mood_entries").
		Columns("user_id", "score", "note", "created_at").
		Values(entry.UserID, entry.Score, entry.Note, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create mood entry SQL")
		return 0, fmt.Errorf("failed to build create mood entry query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", entry.UserID).Msg("Error executing create mood entry query")
		return 0, fmt.Errorf("error creating mood entry: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	return id, nil
}

// ListEntriesByUser returns the user's mood entries newest first, capped at
// limit. Pass zero to use a sane default.
func (r *MoodRepository) ListEntriesByUser(ctx context.Context, userID int64, limit int) ([]*models.MoodEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	sql, args, err := r.sb.Select("id", "user_id", "score", "note", "created_at").
		From("mood_entries").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mood entries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing mood entries")
		return nil, fmt.Errorf("error listing mood entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.MoodEntry{}
	for rows.Next() {
		entry := &models.MoodEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Score, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning mood entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AverageScore returns the mean mood score across all users, zero when no
// entries exist.
func (r *MoodRepository) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, "SELECT COALESCE(AVG(score), 0) FROM mood_entries").Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("error averaging mood scores: %w", err)
	}
	return avg, nil
}

// ListRecentNotes returns the newest non-empty mood notes, used as input to
// the daily institutional insight.
func (r *MoodRepository) ListRecentNotes(ctx context.Context, limit int) ([]string, error) {
	sql, args, err := r.sb.Select("note").
		From("mood_entries").
		Where(squirrel.And{
			squirrel.NotEq{"note": nil},
			squirrel.NotEq{"note": ""},
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent mood notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing recent mood notes")
		return nil, fmt.Errorf("error listing recent mood notes: %w", err)
	}
	defer rows.Close()

	notes := []string{}
	for rows.Next() {
		var note string
		if err := rows.Scan(&note); err != nil {
			return nil, fmt.Errorf("error scanning mood note row: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
