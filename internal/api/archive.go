package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidarkiv/internal/archive"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
)

// ScanRequest represents a request to index an archive directory
type ScanRequest struct {
	Path string `json:"path"` // Optional: defaults to the configured data dir
}

// ScanResponse represents the response after triggering a scan
type ScanResponse struct {
	ScanID  string `json:"scan_id"`
	Message string `json:"message"`
}

// ArchiveHandler handles archive scan requests
type ArchiveHandler struct {
	scanner    *archive.Scanner
	defaultDir string
}

// NewArchiveHandler creates a new archive handler instance
func NewArchiveHandler(scanner *archive.Scanner, defaultDir string) *ArchiveHandler {
	return &ArchiveHandler{
		scanner:    scanner,
		defaultDir: defaultDir,
	}
}

// TriggerScan handles POST /api/archive/scan
func (h *ArchiveHandler) TriggerScan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Empty body is acceptable and means the default directory
		if c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid request body",
			})
			return
		}
	}

	dir := req.Path
	if dir == "" {
		dir = h.defaultDir
	}
	if dir == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_path",
			Message: "Archive directory is required",
		})
		return
	}

	// The scan outlives the request
	scanID, err := h.scanner.StartScan(context.Background(), dir)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("path", dir).
			Msg("Failed to start archive scan")

		switch {
		case errors.Is(err, archive.ErrScanAlreadyRunning):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "scan_in_progress",
				Message: "A scan is already running",
			})
		case errors.Is(err, archive.ErrInvalidDirectory):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_directory",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "scan_failed",
				Message: "Failed to start archive scan",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, ScanResponse{
		ScanID:  scanID,
		Message: "Scan started",
	})
}

// GetScanStatus handles GET /api/archive/scan/:scanId/status
func (h *ArchiveHandler) GetScanStatus(c *gin.Context) {
	scanID := c.Param("scanId")

	progress, err := h.scanner.GetScanProgress(scanID)
	if err != nil {
		if errors.Is(err, archive.ErrScanNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "scan_not_found",
				Message: "Scan not found",
			})
			return
		}

		logger.Log.Error().
			Err(err).
			Str("scan_id", scanID).
			Msg("Failed to get scan progress")

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve scan progress",
		})
		return
	}

	c.JSON(http.StatusOK, progress)
}

// CancelScan handles POST /api/archive/scan/:scanId/cancel
func (h *ArchiveHandler) CancelScan(c *gin.Context) {
	scanID := c.Param("scanId")

	if err := h.scanner.CancelScan(scanID); err != nil {
		switch {
		case errors.Is(err, archive.ErrScanNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "scan_not_found",
				Message: "Scan not found",
			})
		case errors.Is(err, archive.ErrScanNotRunning):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "scan_not_running",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "cancel_failed",
				Message: "Failed to cancel scan",
			})
		}
		return
	}

	c.JSON(http.StatusAccepted, ScanResponse{
		ScanID:  scanID,
		Message: "Scan cancellation requested",
	})
}

// SetupArchiveRoutes registers archive scan routes
func SetupArchiveRoutes(apiGroup *gin.RouterGroup, scanner *archive.Scanner, defaultDir string) {
	handler := NewArchiveHandler(scanner, defaultDir)

	apiGroup.POST("/archive/scan", handler.TriggerScan)
	apiGroup.GET("/archive/scan/:scanId/status", handler.GetScanStatus)
	apiGroup.POST("/archive/scan/:scanId/cancel", handler.CancelScan)
}
