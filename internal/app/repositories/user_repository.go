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
	"github.com/aylin/campuswell/internal/pkg/dberrors"
	"github.com/aylin/campuswell/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "username", "password", "first_name", "last_name",
	"phone_number", "role", "onboarding_status", "current_step",
	"latest_risk_level", "is_active", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new user and returns its ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("email", "username", "password", "first_name", "last_name",
			"phone_number", "role", "onboarding_status", "current_step",
			"is_active", "created_at", "updated_at").
		Values(user.Email, user.Username, user.Password, user.FirstName, user.LastName,
			user.PhoneNumber, user.RoleType, user.OnboardingStatus, user.CurrentStep,
			user.IsActive, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return id, nil
}

// GetUserByID retrieves a user by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"id": id})
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"email": email})
}

// GetUserByUsername retrieves a user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) getUserBy(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.Password,
		&user.FirstName, &user.LastName, &user.PhoneNumber, &user.RoleType,
		&user.OnboardingStatus, &user.CurrentStep, &user.LatestRiskLevel,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email already exists.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

// UsernameExists checks if a username already exists.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) exists(ctx context.Context, pred squirrel.Eq) (bool, error) {
	sql, args, err := r.sb.Select("1").From("users").Where(pred).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return true, nil
}

// UpdateOnboarding persists the user's onboarding state pair.
func (r *UserRepository) UpdateOnboarding(ctx context.Context, userID int64, state models.OnboardingState) error {
	return r.updateUser(ctx, userID, map[string]interface{}{
		"onboarding_status": state.Status,
		"current_step":      state.Step,
	})
}

// UpdateRole sets the user's role during onboarding role selection.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.RoleType) error {
	return r.updateUser(ctx, userID, map[string]interface{}{"role": role})
}

// UpdateProfile updates the user's profile fields collected during setup.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phoneNumber *string) error {
	return r.updateUser(ctx, userID, map[string]interface{}{
		"first_name":   firstName,
		"last_name":    lastName,
		"phone_number": phoneNumber,
	})
}

// UpdateLatestRiskLevel overwrites the user's latest screening risk level.
func (r *UserRepository) UpdateLatestRiskLevel(ctx context.Context, userID int64, level models.RiskLevel) error {
	return r.updateUser(ctx, userID, map[string]interface{}{"latest_risk_level": level})
}

// SetActive enables or disables a user account.
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.updateUser(ctx, userID, map[string]interface{}{"is_active": active})
}

func (r *UserRepository) updateUser(ctx context.Context, userID int64, fields map[string]interface{}) error {
	builder := r.sb.Update("users").Where(squirrel.Eq{"id": userID})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}
	sql, args, err := builder.Set("updated_at", time.Now()).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListUsers returns a page of users, optionally filtered by role and
// onboarding status, plus the unfiltered-page total for pagination.
func (r *UserRepository) ListUsers(ctx context.Context, role, status string, offset uint64, limit int) ([]*models.User, int64, error) {
	pred := squirrel.And{}
	if role != "" {
		pred = append(pred, squirrel.Eq{"role": role})
	}
	if status != "" {
		pred = append(pred, squirrel.Eq{"onboarding_status": status})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("users")
	listBuilder := r.sb.Select(userColumns...).From("users")
	if len(pred) > 0 {
		countBuilder = countBuilder.Where(pred)
		listBuilder = listBuilder.Where(pred)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	sql, args, err := listBuilder.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.Password,
			&user.FirstName, &user.LastName, &user.PhoneNumber, &user.RoleType,
			&user.OnboardingStatus, &user.CurrentStep, &user.LatestRiskLevel,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

// ListCounselors returns all active users with the counselor role.
func (r *UserRepository) ListCounselors(ctx context.Context) ([]*models.User, error) {
	users, _, err := r.ListUsers(ctx, string(models.RoleCounselor), string(models.OnboardingActive), 0, 100)
	return users, err
}

// CountUsers counts all users.
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// RiskDistribution counts users grouped by their latest screening risk level.
// Users who never screened are excluded.
func (r *UserRepository) RiskDistribution(ctx context.Context) (map[string]int64, error) {
	sql, args, err := r.sb.Select("latest_risk_level", "COUNT(*)").
		From("users").
		Where(squirrel.NotEq{"latest_risk_level": nil}).
		GroupBy("latest_risk_level").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build risk distribution query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying risk distribution")
		return nil, fmt.Errorf("error querying risk distribution: %w", err)
	}
	defer rows.Close()

	dist := map[string]int64{}
	for rows.Next() {
		var level string
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("error scanning risk distribution row: %w", err)
		}
		dist[level] = count
	}
	return dist, rows.Err()
}
