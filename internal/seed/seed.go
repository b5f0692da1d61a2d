package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/aylin/campuswell/internal/app/models"
	appRepos "github.com/aylin/campuswell/internal/app/repositories"
	pkgAuth "github.com/aylin/campuswell/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@campuswell.app"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default admin account and the starter
// resource library entries if they don't exist. Errors are collected so one
// failed seed doesn't block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	resourceRepo := appRepos.NewResourceRepository(dbPool)

	var finalErr error

	if err := seedAdminUser(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedResources(ctx, resourceRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := pkgAuth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:            defaultAdminEmail,
		Username:         defaultAdminUsername,
		Password:         hashedPassword,
		FirstName:        "Platform",
		LastName:         "Admin",
		RoleType:         appModels.RoleAdmin,
		OnboardingStatus: appModels.OnboardingActive,
		CurrentStep:      appModels.StepCompleted,
		IsActive:         true,
	}

	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}

// seedResources populates the resource library with public crisis material
// on first startup only. An already-populated table is left alone so admin
// edits survive restarts.
func seedResources(ctx context.Context, resourceRepo *appRepos.ResourceRepository, lgr zerolog.Logger) error {
	count, err := resourceRepo.CountResources(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting resources")
		return err
	}
	if count > 0 {
		return nil
	}

	lgr.Info().Msg("Seeding default resource library...")

	defaults := []*appModels.Resource{
		{
			Title:       "Crisis Hotlines and Immediate Help",
			Description: "Who to contact right now if you or someone you know is in crisis.",
			Content:     "If you are in immediate danger, call your local emergency number. Campus counseling is available 24/7 through the appointments section. You are not alone.",
			Type:        "guide",
			Category:    "crisis",
			Language:    "English",
		},
		{
			Title:       "Understanding Exam Stress",
			Description: "A short article on recognizing and managing academic pressure.",
			Content:     "Exam periods concentrate stress into short windows. This article walks through early warning signs, practical pacing strategies and when to reach out for support.",
			Type:        "article",
			Category:    "stress",
			Language:    "English",
		},
		{
			Title:       "5-Minute Grounding Exercise",
			Description: "A guided breathing and grounding audio session.",
			Content:     "https://cdn.campuswell.app/audio/grounding-5min.mp3",
			Type:        "audio",
			Category:    "mindfulness",
			Language:    "English",
		},
	}

	var finalErr error
	for _, res := range defaults {
		if _, err := resourceRepo.CreateResource(ctx, res); err != nil {
			lgr.Error().Err(err).Str("title", res.Title).Msg("Error seeding resource")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(defaults)).Msg("Default resources seeded")
	}
	return finalErr
}
