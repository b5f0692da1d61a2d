package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/ai"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
	"github.com/aylin/campuswell/internal/pkg/helpers"
)

// AdminUserStore is the user administration surface.
type AdminUserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, role, status string, offset uint64, limit int) ([]*models.User, int64, error)
	UpdateRole(ctx context.Context, userID int64, role models.RoleType) error
	UpdateOnboarding(ctx context.Context, userID int64, state models.OnboardingState) error
	SetActive(ctx context.Context, userID int64, active bool) error
	CountUsers(ctx context.Context) (int64, error)
	RiskDistribution(ctx context.Context) (map[string]int64, error)
}

// StatsSource aggregates the dashboard counters from the other domains.
type StatsSource interface {
	CountPosts(ctx context.Context) (int64, error)
	CountAssessments(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	AverageMoodScore(ctx context.Context) (float64, error)
}

// InsightStore is the day-keyed insight cache.
type InsightStore interface {
	GetInsightByDate(ctx context.Context, day time.Time) (*models.DailyInsight, error)
	SaveInsight(ctx context.Context, insight *models.DailyInsight) error
}

// InsightTextSource supplies the anonymous texts feeding the daily insight.
type InsightTextSource interface {
	ListRecentPostTexts(ctx context.Context, limit int) ([]string, error)
	ListRecentNotes(ctx context.Context, limit int) ([]string, error)
}

const insightTextLimit = 25

// AdminService backs the admin dashboard: user administration, campus-wide
// stats and the cached daily insight.
type AdminService struct {
	userStore    AdminUserStore
	stats        StatsSource
	insightStore InsightStore
	texts        InsightTextSource
	provider     ai.Provider
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userStore AdminUserStore,
	stats StatsSource,
	insightStore InsightStore,
	texts InsightTextSource,
	provider ai.Provider,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userStore:    userStore,
		stats:        stats,
		insightStore: insightStore,
		texts:        texts,
		provider:     provider,
		logger:       logger,
	}
}

// ListUsers returns a page of users with pagination info.
func (s *AdminService) ListUsers(ctx context.Context, role, status string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userStore.ListUsers(ctx, role, status, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return users, helpers.NewPaginationInfo(total, page, limit), nil
}

// UpdateUser applies admin changes to a user account: role reassignment
// and onboarding status overrides (activate, reject, deactivate).
func (s *AdminService) UpdateUser(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, apperrors.NewValidationError("role", "unknown role")
		}
		if err := s.userStore.UpdateRole(ctx, userID, models.RoleType(*req.Role)); err != nil {
			return nil, err
		}
		user.RoleType = models.RoleType(*req.Role)
	}

	if req.OnboardingStatus != nil {
		switch models.OnboardingStatus(*req.OnboardingStatus) {
		case models.OnboardingActive:
			state := models.OnboardingState{Status: models.OnboardingActive, Step: models.StepCompleted}
			if err := s.userStore.UpdateOnboarding(ctx, userID, state); err != nil {
				return nil, err
			}
			user.OnboardingStatus = state.Status
			user.CurrentStep = state.Step
		case models.OnboardingRejected:
			state := models.OnboardingState{Status: models.OnboardingRejected, Step: models.StepRejected}
			if err := s.userStore.UpdateOnboarding(ctx, userID, state); err != nil {
				return nil, err
			}
			user.OnboardingStatus = state.Status
			user.CurrentStep = state.Step
		case models.OnboardingInactive:
			if err := s.userStore.SetActive(ctx, userID, false); err != nil {
				return nil, err
			}
			user.IsActive = false
		default:
			return nil, apperrors.NewValidationError("onboardingStatus", "unknown onboarding status")
		}
	}

	s.logger.Info().Int64("userID", userID).Msg("User updated by admin")
	return user, nil
}

// Stats aggregates the campus-wide dashboard numbers.
func (s *AdminService) Stats(ctx context.Context) (*dto.InstitutionalStats, error) {
	totalUsers, err := s.userStore.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalPosts, err := s.stats.CountPosts(ctx)
	if err != nil {
		return nil, err
	}
	totalScreenings, err := s.stats.CountAssessments(ctx)
	if err != nil {
		return nil, err
	}
	totalAppointments, err := s.stats.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}
	averageMood, err := s.stats.AverageMoodScore(ctx)
	if err != nil {
		return nil, err
	}
	riskDist, err := s.userStore.RiskDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.InstitutionalStats{
		TotalUsers:        totalUsers,
		TotalPosts:        totalPosts,
		TotalScreenings:   totalScreenings,
		TotalAppointments: totalAppointments,
		AverageMoodScore:  averageMood,
		RiskDistribution:  riskDist,
	}, nil
}

// DailyInsight returns the cached institutional insight for today,
// generating it on the first request of the day. Concurrent first requests
// may both generate, but the unique day key ensures only one result is
// stored; the loser re-reads the winner's row.
func (s *AdminService) DailyInsight(ctx context.Context) (*models.DailyInsight, error) {
	today, _ := helpers.DayBounds(time.Now())

	cached, err := s.insightStore.GetInsightByDate(ctx, today)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		// Only a genuine miss triggers generation; a failing read must not
		return nil, err
	}

	postTexts, err := s.texts.ListRecentPostTexts(ctx, insightTextLimit)
	if err != nil {
		return nil, err
	}
	notes, err := s.texts.ListRecentNotes(ctx, insightTextLimit)
	if err != nil {
		return nil, err
	}

	result := s.provider.InstitutionalInsights(ctx, append(postTexts, notes...))
	insight := &models.DailyInsight{
		InsightDate:    today,
		Summary:        result.Summary,
		TopConcerns:    result.TopConcerns,
		Recommendation: result.Recommendation,
	}

	if err := s.insightStore.SaveInsight(ctx, insight); err != nil {
		return nil, err
	}

	return s.insightStore.GetInsightByDate(ctx, today)
}
