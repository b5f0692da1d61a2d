package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/bootstrap"
	"github.com/aylin/campuswell/internal/config"
)

// How often expired refresh tokens are swept from the database.
const tokenCleanupInterval = 24 * time.Hour

// Server ties the HTTP listener to the database pool and the background
// maintenance that runs for the lifetime of the process.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration, connects and migrates the database, builds
// the dependency graph and assembles the router.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	s := &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps, lgr),
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}

	if err := s.mountDocumentStorage(); err != nil {
		dbPool.Close()
		return nil, err
	}

	return s, nil
}

// mountDocumentStorage serves the upload directory over /uploads so admins
// reviewing an onboarding submission can open the stored documents from the
// dashboard.
func (s *Server) mountDocumentStorage() error {
	path := s.config.Server.StoragePath
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create document storage directory %s: %w", path, err)
	}

	s.router.Static("/uploads", path)
	s.logger.Info().Str("path", path).Msg("Serving onboarding documents")
	return nil
}

// Run starts the HTTP server plus the token cleanup sweeper and blocks until
// a shutdown signal or a listener error.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	maintCtx, stopMaintenance := context.WithCancel(context.Background())
	defer stopMaintenance()
	go s.deps.AuthService.RunTokenCleanup(maintCtx, tokenCleanupInterval)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	stopMaintenance()
	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the HTTP server and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server stopped")
		}
	}

	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed")
	}

	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
