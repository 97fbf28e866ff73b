package timeline

import (
	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// Session is the state of one watch page: the loaded metadata and everything
// derived from it. It is built once per request and never mutated afterwards.
type Session struct {
	VideoID  string
	Meta     *models.VideoMetadata
	Timeline *Timeline
	Options  Options
}

// NewSession builds the timeline for meta and wraps both in a Session
func NewSession(videoID string, meta *models.VideoMetadata, opts Options) *Session {
	return &Session{
		VideoID:  videoID,
		Meta:     meta,
		Timeline: Build(meta, opts),
		Options:  opts,
	}
}

// itemID prefers the document's own id for asset paths
func (s *Session) itemID() string {
	if s.Meta != nil && s.Meta.ItemID != "" {
		return s.Meta.ItemID
	}
	return s.VideoID
}

// SeekTo returns the seek time for a chapter selector index
func (s *Session) SeekTo(selectedIndex int) (float64, bool) {
	chapters := s.Timeline.Chapters
	if selectedIndex < 0 || selectedIndex >= len(chapters) {
		return 0, false
	}
	return chapters[selectedIndex].StartSeconds, true
}

// VideoURL is the media source of the player
func (s *Session) VideoURL() string {
	return metadata.AssetURL(s.Options.AssetBase, s.itemID(), s.Meta.VideoFile)
}

// PosterURL is the poster image, or "" when the video has none
func (s *Session) PosterURL() string {
	if s.Meta.Poster == "" {
		return ""
	}
	return metadata.AssetURL(s.Options.AssetBase, s.itemID(), s.Meta.Poster)
}

// DownloadName is the file name offered by the download link
func (s *Session) DownloadName() string {
	if s.Meta.Title == "" {
		return metadata.AssetURL("", s.Meta.VideoFile)
	}
	return s.Meta.Title + ".mp4"
}
