// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidarkiv/internal/api"
	"github.com/stwalsh4118/vidarkiv/internal/archive"
	"github.com/stwalsh4118/vidarkiv/internal/config"
	"github.com/stwalsh4118/vidarkiv/internal/db"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/middleware"
	"github.com/stwalsh4118/vidarkiv/internal/timeline"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	db              *db.DB
	repos           *db.Repositories
	scanner         *archive.Scanner
	timelineService *timeline.TimelineService
	router          *gin.Engine
	server          *http.Server
}

// New creates a new server instance. The metadata loader is chosen by
// archive.source.
func New(ctx context.Context, cfg *config.Config, database *db.DB) (*Server, error) {
	loader, err := metadata.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata loader: %w", err)
	}

	opts := timeline.Options{
		AssetBase: cfg.Archive.AssetBase,
		SlideDir:  cfg.Archive.SlideDir,
	}

	repos := db.NewRepositories(database)

	return &Server{
		config:          cfg,
		db:              database,
		repos:           repos,
		scanner:         archive.NewScanner(repos, opts),
		timelineService: timeline.NewTimelineService(loader, repos, opts),
	}, nil
}

// Router builds the router on first use and returns it
func (s *Server) Router() *gin.Engine {
	if s.router == nil {
		s.setupRouter()
	}
	return s.router
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	apiGroup := s.router.Group("/api")
	api.SetupHealthRoutes(apiGroup, s.db, s.repos, s.config.Archive.Source)
	api.SetupVideoRoutes(apiGroup, s.repos, s.timelineService)
	api.SetupArchiveRoutes(apiGroup, s.scanner, s.scanDir())

	api.SetupWatchRoutes(s.router, s.timelineService, s.config.Archive.PlayerScriptURL)

	// A local archive also serves the assets the watch page links to
	if s.config.Archive.Source == config.SourceFile {
		s.router.Static("/data", s.config.Archive.DataDir)
	}
}

// scanDir is the default directory for archive scans; only local archives
// can be scanned without an explicit path
func (s *Server) scanDir() string {
	if s.config.Archive.Source == config.SourceFile {
		return s.config.Archive.DataDir
	}
	return ""
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.Router()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Str("archive_source", s.config.Archive.Source).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.scanner != nil {
		s.scanner.Stop()
	}

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
