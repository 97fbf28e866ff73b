package timeline

import (
	"context"

	"github.com/stwalsh4118/vidarkiv/internal/db"
	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// TimelineService opens watch sessions: it loads metadata, builds the
// timeline, logs dropped entries and keeps the catalog current.
//
//nolint:revive // Service name matches established patterns in codebase
type TimelineService struct {
	loader metadata.Loader
	repos  *db.Repositories
	opts   Options
}

// NewTimelineService creates a new timeline service instance.
// repos may be nil, in which case loads are not recorded in the catalog.
func NewTimelineService(loader metadata.Loader, repos *db.Repositories, opts Options) *TimelineService {
	return &TimelineService{
		loader: loader,
		repos:  repos,
		opts:   opts,
	}
}

// Options returns the asset options used for captions and URLs
func (s *TimelineService) Options() Options {
	return s.opts
}

// LoadMetadata fetches the raw metadata document of a video
func (s *TimelineService) LoadMetadata(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	meta, err := s.loader.Load(ctx, videoID)
	if err != nil {
		event := logger.Log.Warn()
		if !metadata.IsNotFound(err) && !metadata.IsParseError(err) {
			event = logger.Log.Error()
		}
		event.
			Err(err).
			Str("video_id", videoID).
			Msg("Failed to load video metadata")
		return nil, err
	}
	return meta, nil
}

// Open loads a video's metadata and derives its session.
//
// Returns:
//   - Session: metadata, timeline and seek table for the page
//   - error: metadata.ErrVideoNotFound, *metadata.ParseError, or a wrapped loader error
func (s *TimelineService) Open(ctx context.Context, videoID string) (*Session, error) {
	logger.Log.Debug().
		Str("video_id", videoID).
		Msg("Opening watch session")

	meta, err := s.LoadMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}

	session := NewSession(videoID, meta, s.opts)
	s.logTimeline(videoID, session.Timeline)
	s.record(ctx, videoID, meta, session.Timeline)

	logger.Log.Info().
		Str("video_id", videoID).
		Str("title", meta.Title).
		Int("overlays", len(session.Timeline.Overlays)).
		Int("chapters", len(session.Timeline.Chapters)).
		Int("skipped", len(session.Timeline.Skipped)).
		Msg("Watch session opened")

	return session, nil
}

// logTimeline emits one diagnostic line per dropped entry
func (s *TimelineService) logTimeline(videoID string, tl *Timeline) {
	for _, o := range tl.Overlays {
		logger.Log.Debug().
			Str("video_id", videoID).
			Float64("start", o.Start).
			Float64("end", o.End).
			Msg("Added slide")
	}

	for _, sk := range tl.Skipped {
		switch sk.Reason {
		case SkipNotCued:
			logger.Log.Debug().
				Str("video_id", videoID).
				Int("index", sk.Index).
				Msg("Ignoring uncued slide")
		case SkipZeroDuration:
			logger.Log.Warn().
				Str("video_id", videoID).
				Int("index", sk.Index).
				Str("title", sk.Title).
				Float64("start", sk.Start).
				Float64("end", sk.End).
				Msg("Ignoring slide with zero duration")
		case SkipNoBoundary:
			logger.Log.Warn().
				Str("video_id", videoID).
				Int("index", sk.Index).
				Str("title", sk.Title).
				Msg("Ignoring chapter without boundary")
		}
	}
}

// record upserts the catalog entry; failures are logged and swallowed
func (s *TimelineService) record(ctx context.Context, videoID string, meta *models.VideoMetadata, tl *Timeline) {
	if s.repos == nil {
		return
	}

	video := models.NewVideo(videoID, meta, models.VideoSourceWatch)
	video.SlideCount = len(tl.Overlays)
	video.ChapterCount = len(tl.Chapters)

	if err := s.repos.Videos.Upsert(ctx, video); err != nil {
		logger.Log.Warn().
			Err(err).
			Str("video_id", videoID).
			Msg("Failed to record video in catalog")
	}
}
