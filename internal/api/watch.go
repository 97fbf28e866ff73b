package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/timeline"
	"github.com/stwalsh4118/vidarkiv/internal/watch"
)

// WatchHandler serves the watch page
type WatchHandler struct {
	service         *timeline.TimelineService
	playerScriptURL string
}

// NewWatchHandler creates a new watch page handler
func NewWatchHandler(service *timeline.TimelineService, playerScriptURL string) *WatchHandler {
	return &WatchHandler{
		service:         service,
		playerScriptURL: playerScriptURL,
	}
}

// Page handles GET /?watch=<guid>. Every failure renders the error state of
// the same page; a validation failure never reaches the loader.
func (h *WatchHandler) Page(c *gin.Context) {
	videoID := c.Query(watch.QueryParam)

	if err := watch.ValidateVideoID(videoID); err != nil {
		logger.Log.Debug().
			Str("watch", videoID).
			Str("reason", err.Error()).
			Msg("Rejected watch parameter")
		h.renderError(c, err)
		return
	}

	session, err := h.service.Open(c.Request.Context(), videoID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, watch.TemplateName, watch.NewPage(session, h.playerScriptURL))
}

func (h *WatchHandler) renderError(c *gin.Context, err error) {
	c.HTML(watch.StatusCode(err), watch.TemplateName, watch.NewErrorPage(err, h.playerScriptURL))
}

// SetupWatchRoutes installs the page template and registers the watch page
func SetupWatchRoutes(router *gin.Engine, service *timeline.TimelineService, playerScriptURL string) {
	router.SetHTMLTemplate(watch.PageTemplate)

	handler := NewWatchHandler(service, playerScriptURL)
	router.GET("/", handler.Page)
	router.GET("/index.html", handler.Page)
}
