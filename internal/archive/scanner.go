// Package archive indexes an archive directory into the video catalog.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidarkiv/internal/db"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/models"
	"github.com/stwalsh4118/vidarkiv/internal/timeline"
	"github.com/stwalsh4118/vidarkiv/internal/watch"
)

// Scan retention and cleanup settings
const (
	scanRetentionPeriod = 1 * time.Hour    // Keep finished scans for 1 hour
	cleanupInterval     = 15 * time.Minute // Run cleanup every 15 minutes
	maxMetaFileBytes    = 8 << 20
)

// ScanStatus represents the current state of an archive scan
type ScanStatus string

// Archive scan status constants
const (
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusCancelled ScanStatus = "cancelled"
	ScanStatusFailed    ScanStatus = "failed"
)

// Common scanner errors
var (
	ErrScanNotFound       = errors.New("scan not found")
	ErrScanAlreadyRunning = errors.New("a scan is already running")
	ErrScanNotRunning     = errors.New("scan is not running")
	ErrInvalidDirectory   = errors.New("invalid directory path")
)

// ScanProgress tracks the progress of an archive scan
type ScanProgress struct {
	ScanID         string     `json:"scan_id"`
	Status         ScanStatus `json:"status"`
	Directory      string     `json:"directory"`
	TotalFiles     int        `json:"total_files"`
	ProcessedFiles int        `json:"processed_files"`
	SuccessCount   int        `json:"success_count"`
	FailedCount    int        `json:"failed_count"`
	CurrentFile    string     `json:"current_file"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Errors         []string   `json:"errors,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`
	mu             sync.RWMutex
	cancelFunc     context.CancelFunc
}

// Scanner indexes meta.json documents found below an archive directory
type Scanner struct {
	repos       *db.Repositories
	opts        timeline.Options
	activeScans map[string]*ScanProgress
	mu          sync.RWMutex
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// NewScanner creates a scanner and starts its cleanup loop
func NewScanner(repos *db.Repositories, opts timeline.Options) *Scanner {
	s := &Scanner{
		repos:       repos,
		opts:        opts,
		activeScans: make(map[string]*ScanProgress),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}

	go s.runCleanupLoop()

	return s
}

// StartScan begins an asynchronous scan of dirPath and returns its id.
// Only one scan may run at a time.
func (s *Scanner) StartScan(ctx context.Context, dirPath string) (string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: directory does not exist", ErrInvalidDirectory)
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: path is not a directory", ErrInvalidDirectory)
	}

	// Check and insert under one lock so two callers cannot both start
	s.mu.Lock()
	for _, scan := range s.activeScans {
		scan.mu.RLock()
		running := scan.Status == ScanStatusRunning
		scan.mu.RUnlock()
		if running {
			s.mu.Unlock()
			return "", ErrScanAlreadyRunning
		}
	}

	scanID := uuid.New().String()
	scanCtx, cancel := context.WithCancel(ctx)

	progress := &ScanProgress{
		ScanID:     scanID,
		Status:     ScanStatusRunning,
		Directory:  dirPath,
		StartTime:  time.Now().UTC(),
		Errors:     []string{},
		Warnings:   []string{},
		cancelFunc: cancel,
	}
	s.activeScans[scanID] = progress
	s.mu.Unlock()

	go s.performScan(scanCtx, progress, dirPath)

	logger.Log.Info().
		Str("scan_id", scanID).
		Str("directory", dirPath).
		Msg("Archive scan started")

	return scanID, nil
}

// GetScanProgress returns a snapshot of a scan's progress
func (s *Scanner) GetScanProgress(scanID string) (*ScanProgress, error) {
	s.mu.RLock()
	progress, exists := s.activeScans[scanID]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrScanNotFound
	}

	progress.mu.RLock()
	defer progress.mu.RUnlock()

	return &ScanProgress{
		ScanID:         progress.ScanID,
		Status:         progress.Status,
		Directory:      progress.Directory,
		TotalFiles:     progress.TotalFiles,
		ProcessedFiles: progress.ProcessedFiles,
		SuccessCount:   progress.SuccessCount,
		FailedCount:    progress.FailedCount,
		CurrentFile:    progress.CurrentFile,
		StartTime:      progress.StartTime,
		EndTime:        progress.EndTime,
		Errors:         append([]string{}, progress.Errors...),
		Warnings:       append([]string{}, progress.Warnings...),
	}, nil
}

// CancelScan cancels a running scan
func (s *Scanner) CancelScan(scanID string) error {
	s.mu.RLock()
	progress, exists := s.activeScans[scanID]
	s.mu.RUnlock()

	if !exists {
		return ErrScanNotFound
	}

	progress.mu.Lock()
	if progress.Status != ScanStatusRunning {
		status := progress.Status
		progress.mu.Unlock()
		return fmt.Errorf("%w (status: %s)", ErrScanNotRunning, status)
	}
	if progress.cancelFunc != nil {
		progress.cancelFunc()
	}
	progress.mu.Unlock()

	logger.Log.Info().
		Str("scan_id", scanID).
		Msg("Archive scan cancellation requested")

	return nil
}

func (s *Scanner) performScan(ctx context.Context, progress *ScanProgress, dirPath string) {
	metaFiles := s.findMetaFiles(ctx, dirPath, progress)

	if ctx.Err() != nil {
		s.finalizeScan(progress, ScanStatusCancelled)
		return
	}

	progress.mu.Lock()
	progress.TotalFiles = len(metaFiles)
	progress.mu.Unlock()

	logger.Log.Info().
		Str("scan_id", progress.ScanID).
		Int("total_files", len(metaFiles)).
		Msg("Found metadata files to process")

	for _, filePath := range metaFiles {
		select {
		case <-ctx.Done():
			s.finalizeScan(progress, ScanStatusCancelled)
			return
		default:
		}

		s.processMetaFile(ctx, filePath, progress)
	}

	s.finalizeScan(progress, ScanStatusCompleted)
}

// findMetaFiles walks the directory tree and returns every meta.json path
func (s *Scanner) findMetaFiles(ctx context.Context, dirPath string, progress *ScanProgress) []string {
	var metaFiles []string

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logger.Log.Warn().
				Str("path", path).
				Err(err).
				Msg("Error during directory walk")
			progress.addError(fmt.Sprintf("error accessing path %s: %v", path, err))
			return nil
		}

		if !d.IsDir() && d.Name() == metadata.MetaFileName {
			metaFiles = append(metaFiles, path)
		}
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error().Err(err).Msg("Directory walk failed")
		progress.addError(fmt.Sprintf("directory walk failed: %v", err))
	}

	return metaFiles
}

// processMetaFile decodes one document, builds its timeline and records it
func (s *Scanner) processMetaFile(ctx context.Context, filePath string, progress *ScanProgress) {
	progress.mu.Lock()
	progress.CurrentFile = filePath
	progress.mu.Unlock()

	videoDir := filepath.Dir(filePath)
	videoID := filepath.Base(videoDir)
	if err := watch.ValidateVideoID(videoID); err != nil {
		s.recordFileError(progress, filePath, fmt.Errorf("directory is not a video id: %w", err))
		return
	}

	check := CheckFile(filePath, maxMetaFileBytes)
	if !check.Readable {
		s.recordFileError(progress, filePath, check.Err())
		return
	}

	body, err := os.ReadFile(filePath)
	if err != nil {
		s.recordFileError(progress, filePath, fmt.Errorf("read failed: %w", err))
		return
	}

	meta, err := metadata.Decode(body)
	if err != nil {
		s.recordFileError(progress, filePath, err)
		return
	}

	tl := timeline.Build(meta, s.opts)

	for _, missing := range CheckAssets(videoDir, meta, s.opts.SlideDir) {
		progress.addWarning(fmt.Sprintf("%s: missing asset %s", videoID, missing))
	}

	video := models.NewVideo(videoID, meta, models.VideoSourceScan)
	video.SlideCount = len(tl.Overlays)
	video.ChapterCount = len(tl.Chapters)

	if err := s.repos.Videos.Upsert(ctx, video); err != nil {
		s.recordFileError(progress, filePath, fmt.Errorf("database operation failed: %w", err))
		return
	}

	progress.mu.Lock()
	progress.SuccessCount++
	progress.ProcessedFiles++
	progress.mu.Unlock()

	logger.Log.Debug().
		Str("video_id", videoID).
		Str("title", video.Title).
		Int("overlays", video.SlideCount).
		Int("chapters", video.ChapterCount).
		Int("skipped", len(tl.Skipped)).
		Msg("Indexed video")
}

func (s *Scanner) recordFileError(progress *ScanProgress, filePath string, err error) {
	logger.Log.Warn().
		Str("file", filePath).
		Err(err).
		Msg("Failed to index metadata file")

	progress.mu.Lock()
	progress.FailedCount++
	progress.ProcessedFiles++
	progress.Errors = append(progress.Errors, fmt.Sprintf("%s: %v", filePath, err))
	progress.mu.Unlock()
}

func (p *ScanProgress) addError(msg string) {
	p.mu.Lock()
	p.Errors = append(p.Errors, msg)
	p.mu.Unlock()
}

func (p *ScanProgress) addWarning(msg string) {
	p.mu.Lock()
	p.Warnings = append(p.Warnings, msg)
	p.mu.Unlock()
}

func (s *Scanner) finalizeScan(progress *ScanProgress, status ScanStatus) {
	endTime := time.Now().UTC()

	progress.mu.Lock()
	progress.Status = status
	progress.EndTime = &endTime
	progress.CurrentFile = ""
	progress.mu.Unlock()

	progress.mu.RLock()
	logger.Log.Info().
		Str("scan_id", progress.ScanID).
		Str("status", string(status)).
		Int("total_files", progress.TotalFiles).
		Int("success_count", progress.SuccessCount).
		Int("failed_count", progress.FailedCount).
		Int("warning_count", len(progress.Warnings)).
		Dur("duration", endTime.Sub(progress.StartTime)).
		Msg("Archive scan finished")
	progress.mu.RUnlock()
}

// Stop stops the cleanup goroutine
func (s *Scanner) Stop() {
	close(s.stopCleanup)
	<-s.cleanupDone
	logger.Log.Debug().Msg("Scanner cleanup goroutine stopped")
}

func (s *Scanner) runCleanupLoop() {
	defer close(s.cleanupDone)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCleanup:
			return
		case <-ticker.C:
			s.CleanupOldScans(scanRetentionPeriod)
		}
	}
}

// CleanupOldScans removes finished scans that ended before now-olderThan
func (s *Scanner) CleanupOldScans(olderThan time.Duration) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for scanID, progress := range s.activeScans {
		progress.mu.RLock()
		status := progress.Status
		endTime := progress.EndTime
		progress.mu.RUnlock()

		if status == ScanStatusRunning || endTime == nil {
			continue
		}

		if endTime.Before(cutoff) {
			delete(s.activeScans, scanID)
			removed++
		}
	}

	if removed > 0 {
		logger.Log.Debug().
			Int("removed_count", removed).
			Int("remaining_count", len(s.activeScans)).
			Dur("older_than", olderThan).
			Msg("Cleaned up old scans")
	}
}
