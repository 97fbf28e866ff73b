package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidarkiv/internal/db"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/models"
	"github.com/stwalsh4118/vidarkiv/internal/timeline"
	"github.com/stwalsh4118/vidarkiv/internal/watch"
)

const (
	defaultListLimit = 20
	maxListLimit     = 1000
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// VideoListResponse represents a page of the catalog
type VideoListResponse struct {
	Items  []*models.Video `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// DeleteResponse represents a successful delete operation
type DeleteResponse struct {
	Message string `json:"message"`
}

// TimelineResponse is the derived timeline of one video
type TimelineResponse struct {
	VideoID    string                  `json:"video_id"`
	Title      string                  `json:"title"`
	VideoURL   string                  `json:"video_url"`
	PosterURL  string                  `json:"poster_url,omitempty"`
	Overlays   []timeline.SlideOverlay `json:"overlays"`
	Chapters   []timeline.ChapterMark  `json:"chapters"`
	SeekTable  []float64               `json:"seek_table"`
	Skipped    []timeline.SkippedEntry `json:"skipped,omitempty"`
	HasSlides  bool                    `json:"has_slides"`
	NoChapters bool                    `json:"no_chapters"`
}

// VideoHandler handles catalog and per-video metadata requests
type VideoHandler struct {
	repos   *db.Repositories
	service *timeline.TimelineService
}

// NewVideoHandler creates a new video handler instance
func NewVideoHandler(repos *db.Repositories, service *timeline.TimelineService) *VideoHandler {
	return &VideoHandler{
		repos:   repos,
		service: service,
	}
}

// videoID validates the :id path parameter, writing a 400 on failure
func videoID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := watch.ValidateVideoID(id); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: err.Error(),
		})
		return "", false
	}
	return id, true
}

// respondLoadError maps a metadata load failure to a JSON error
func respondLoadError(c *gin.Context, err error) {
	switch {
	case metadata.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "video_not_found",
			Message: watch.UserMessage(err),
		})
	case metadata.IsParseError(err):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "invalid_metadata",
			Message: watch.UserMessage(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "load_failed",
			Message: "Failed to load video metadata",
		})
	}
}

// ListVideos handles GET /api/videos
func (h *VideoHandler) ListVideos(c *gin.Context) {
	limit := defaultListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxListLimit)
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	videos, err := h.repos.Videos.List(ctx, limit, offset)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("Failed to list videos")

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve video list",
		})
		return
	}

	total, err := h.repos.Videos.Count(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to count videos")

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve video count",
		})
		return
	}

	c.JSON(http.StatusOK, VideoListResponse{
		Items:  videos,
		Total:  int(total),
		Limit:  limit,
		Offset: offset,
	})
}

// GetVideo handles GET /api/videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	video, err := h.repos.Videos.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Video not found in catalog",
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Str("video_id", id).
			Msg("Failed to get video by ID")

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve video",
		})
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo handles DELETE /api/videos/:id. Only the catalog entry is
// removed; archive files are never touched.
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repos.Videos.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Video not found in catalog",
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Str("video_id", id).
			Msg("Failed to delete video")

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete video",
		})
		return
	}

	logger.Log.Info().
		Str("video_id", id).
		Msg("Video removed from catalog")

	c.JSON(http.StatusOK, DeleteResponse{
		Message: "Video removed from catalog",
	})
}

// GetMetadata handles GET /api/videos/:id/meta
func (h *VideoHandler) GetMetadata(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	meta, err := h.service.LoadMetadata(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

// GetTimeline handles GET /api/videos/:id/timeline
func (h *VideoHandler) GetTimeline(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	session, err := h.service.Open(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	tl := session.Timeline
	c.JSON(http.StatusOK, TimelineResponse{
		VideoID:    id,
		Title:      session.Meta.Title,
		VideoURL:   session.VideoURL(),
		PosterURL:  session.PosterURL(),
		Overlays:   tl.Overlays,
		Chapters:   tl.Chapters,
		SeekTable:  tl.SeekTable(),
		Skipped:    tl.Skipped,
		HasSlides:  tl.HasSlides,
		NoChapters: tl.NoChapters,
	})
}

// SetupVideoRoutes registers catalog and metadata routes
func SetupVideoRoutes(apiGroup *gin.RouterGroup, repos *db.Repositories, service *timeline.TimelineService) {
	handler := NewVideoHandler(repos, service)

	apiGroup.GET("/videos", handler.ListVideos)
	apiGroup.GET("/videos/:id", handler.GetVideo)
	apiGroup.DELETE("/videos/:id", handler.DeleteVideo)
	apiGroup.GET("/videos/:id/meta", handler.GetMetadata)
	apiGroup.GET("/videos/:id/timeline", handler.GetTimeline)
}
