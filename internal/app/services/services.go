package services

import (
	"context"

	"github.com/aylin/campuswell/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - OnboardingService: the verify/role/profile/review state machine
// - ScreeningService: questionnaire scoring and assessment history
// - ForumService: peer-support posts, replies and crisis screening
// - MoodService: mood tracking, analytics and wellness actions
// - AppointmentService: counseling appointment booking and lifecycle
// - ResourceService: the self-help resource library
// - AdminService: user administration, campus stats, daily insight

// RepoStats adapts the concrete repositories to the cross-domain read
// surfaces the admin dashboard needs.
type RepoStats struct {
	Posts        *repositories.PostRepository
	Screenings   *repositories.ScreeningRepository
	Appointments *repositories.AppointmentRepository
	Moods        *repositories.MoodRepository
}

// NewRepoStats creates a RepoStats over the shared repositories.
func NewRepoStats(repos *repositories.Repositories) *RepoStats {
	return &RepoStats{
		Posts:        repos.PostRepository,
		Screenings:   repos.ScreeningRepository,
		Appointments: repos.AppointmentRepository,
		Moods:        repos.MoodRepository,
	}
}

// CountPosts implements StatsSource.
func (r *RepoStats) CountPosts(ctx context.Context) (int64, error) {
	return r.Posts.CountPosts(ctx)
}

// CountAssessments implements StatsSource.
func (r *RepoStats) CountAssessments(ctx context.Context) (int64, error) {
	return r.Screenings.CountAssessments(ctx)
}

// CountAppointments implements StatsSource.
func (r *RepoStats) CountAppointments(ctx context.Context) (int64, error) {
	return r.Appointments.CountAppointments(ctx)
}

// AverageMoodScore implements StatsSource.
func (r *RepoStats) AverageMoodScore(ctx context.Context) (float64, error) {
	return r.Moods.AverageScore(ctx)
}

// ListRecentPostTexts implements InsightTextSource.
func (r *RepoStats) ListRecentPostTexts(ctx context.Context, limit int) ([]string, error) {
	return r.Posts.ListRecentPostTexts(ctx, limit)
}

// ListRecentNotes implements InsightTextSource.
func (r *RepoStats) ListRecentNotes(ctx context.Context, limit int) ([]string, error) {
	return r.Moods.ListRecentNotes(ctx, limit)
}
