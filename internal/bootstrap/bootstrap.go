package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/aylin/campuswell/docs" // Generated swagger docs
	appControllers "github.com/aylin/campuswell/internal/app/controllers"
	appMigrations "github.com/aylin/campuswell/internal/app/migrations"
	appRepos "github.com/aylin/campuswell/internal/app/repositories"
	appRoutes "github.com/aylin/campuswell/internal/app/routes"
	appServices "github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/config"
	"github.com/aylin/campuswell/internal/db"
	appMiddleware "github.com/aylin/campuswell/internal/middleware"
	"github.com/aylin/campuswell/internal/pkg/ai"
	pkgAuth "github.com/aylin/campuswell/internal/pkg/auth"
	"github.com/aylin/campuswell/internal/pkg/email"
	"github.com/aylin/campuswell/internal/pkg/filestorage"
	"github.com/aylin/campuswell/internal/pkg/helpers"
	"github.com/aylin/campuswell/internal/pkg/logger"
	"github.com/aylin/campuswell/internal/pkg/websocket"
	"github.com/aylin/campuswell/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	OnboardingService  *appServices.OnboardingService
	ScreeningService   *appServices.ScreeningService
	ForumService       *appServices.ForumService
	MoodService        *appServices.MoodService
	AppointmentService *appServices.AppointmentService
	ResourceService    *appServices.ResourceService
	AdminService       *appServices.AdminService

	AuthController        *appControllers.AuthController
	OnboardingController  *appControllers.OnboardingController
	ScreeningController   *appControllers.ScreeningController
	ForumController       *appControllers.ForumController
	MoodController        *appControllers.MoodController
	AppointmentController *appControllers.AppointmentController
	ResourceController    *appControllers.ResourceController
	AdminController       *appControllers.AdminController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	EmailService   email.Service
	AIClient       *ai.Client
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed failures are logged but don't block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AIClient = ai.NewClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: helpers.ParseDuration(cfg.AI.Timeout, 8*time.Second),
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.AIClient, lgr)

	devMode := strings.ToLower(cfg.Server.Mode) != "production"

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.OnboardingService = appServices.NewOnboardingService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.DocumentRepository,
		deps.FileStorage,
		devMode,
		lgr,
	)
	deps.ScreeningService = appServices.NewScreeningService(deps.Repos.ScreeningRepository, deps.Repos.UserRepository, deps.AIClient, lgr)
	deps.ForumService = appServices.NewForumService(deps.Repos.PostRepository, deps.AIClient, deps.Hub, lgr)
	deps.MoodService = appServices.NewMoodService(deps.Repos.MoodRepository, deps.AIClient, lgr)
	deps.AppointmentService = appServices.NewAppointmentService(deps.Repos.AppointmentRepository, deps.Repos.UserRepository, lgr)
	deps.ResourceService = appServices.NewResourceService(deps.Repos.ResourceRepository, lgr)

	stats := appServices.NewRepoStats(deps.Repos)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.UserRepository,
		stats,
		deps.Repos.InsightRepository,
		stats,
		deps.AIClient,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.OnboardingController = appControllers.NewOnboardingController(deps.OnboardingService, lgr)
	deps.ScreeningController = appControllers.NewScreeningController(deps.ScreeningService, lgr)
	deps.ForumController = appControllers.NewForumController(deps.ForumService, lgr)
	deps.MoodController = appControllers.NewMoodController(deps.MoodService, lgr)
	deps.AppointmentController = appControllers.NewAppointmentController(deps.AppointmentService, lgr)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OnboardingController,
		deps.ScreeningController,
		deps.ForumController,
		deps.MoodController,
		deps.AppointmentController,
		deps.ResourceController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
