package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidarkiv/internal/db"
)

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status        string         `json:"status"`
	Database      string         `json:"database"`
	ArchiveSource string         `json:"archive_source"`
	Time          string         `json:"time"`
	Details       map[string]any `json:"details,omitempty"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db            *db.DB
	repos         *db.Repositories
	archiveSource string
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(database *db.DB, repos *db.Repositories, archiveSource string) *HealthHandler {
	return &HealthHandler{db: database, repos: repos, archiveSource: archiveSource}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:        "ok",
		ArchiveSource: h.archiveSource,
		Time:          time.Now().UTC().Format(time.RFC3339),
		Details:       make(map[string]any),
	}

	if err := h.db.Health(ctx); err != nil {
		response.Status = "degraded"
		response.Database = "unhealthy"
		response.Details["database_error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	response.Database = "healthy"

	if count, err := h.repos.Videos.Count(ctx); err == nil {
		response.Details["catalog_videos"] = count
	}

	c.JSON(http.StatusOK, response)
}

// SetupHealthRoutes registers health check routes
func SetupHealthRoutes(apiGroup *gin.RouterGroup, database *db.DB, repos *db.Repositories, archiveSource string) {
	handler := NewHealthHandler(database, repos, archiveSource)
	apiGroup.GET("/health", handler.Check)
}
