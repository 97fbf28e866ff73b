package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SlidePositionLeft places the slide pane before the video
const SlidePositionLeft = "left"

// VideoMetadata is the meta.json document describing one archived video
type VideoMetadata struct {
	ItemID              string       `json:"itemID"`
	VideoFile           string       `json:"videoFile"`
	Title               string       `json:"title"`
	Poster              string       `json:"poster,omitempty"`
	SlideScreenPosition string       `json:"slideScreenPosition,omitempty"`
	Slides              []SlideEntry `json:"slides"`
}

type videoMetadataWire struct {
	ItemID              json.RawMessage `json:"itemID"`
	VideoFile           json.RawMessage `json:"videoFile"`
	Title               json.RawMessage `json:"title"`
	Poster              json.RawMessage `json:"poster"`
	SlideScreenPosition json.RawMessage `json:"slideScreenPosition"`
	Slides              []SlideEntry    `json:"slides"`
}

// UnmarshalJSON accepts plain and array-wrapped scalar fields
func (m *VideoMetadata) UnmarshalJSON(data []byte) error {
	var w videoMetadataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := VideoMetadata{Slides: w.Slides}
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *string
	}{
		{"itemID", w.ItemID, &out.ItemID},
		{"videoFile", w.VideoFile, &out.VideoFile},
		{"title", w.Title, &out.Title},
		{"poster", w.Poster, &out.Poster},
		{"slideScreenPosition", w.SlideScreenPosition, &out.SlideScreenPosition},
	}
	for _, f := range fields {
		s, err := decodeText(f.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = s
	}

	*m = out
	return nil
}

// SlidesFirst reports whether the slide pane is laid out before the video
func (m *VideoMetadata) SlidesFirst() bool {
	return m.SlideScreenPosition == SlidePositionLeft
}

// Video sources recorded in the catalog
const (
	VideoSourceScan  = "scan"
	VideoSourceWatch = "watch"
)

// Video is the catalog record of an archived video
type Video struct {
	ID           string    `json:"id" gorm:"type:text;primaryKey;column:id"`
	Title        string    `json:"title" gorm:"type:text;not null;column:title"`
	VideoFile    string    `json:"video_file" gorm:"type:text;not null;column:video_file"`
	Poster       *string   `json:"poster,omitempty" gorm:"type:text;column:poster"`
	SlideCount   int       `json:"slide_count" gorm:"type:integer;not null;default:0;column:slide_count"`
	ChapterCount int       `json:"chapter_count" gorm:"type:integer;not null;default:0;column:chapter_count"`
	Source       string    `json:"source" gorm:"type:text;not null;column:source"`
	LastLoadedAt time.Time `json:"last_loaded_at" gorm:"type:datetime;column:last_loaded_at"`
	CreatedAt    time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// TableName pins the gorm table name
func (Video) TableName() string {
	return "videos"
}

// NewVideo creates a catalog record from loaded metadata
func NewVideo(id string, meta *VideoMetadata, source string) *Video {
	now := time.Now().UTC()
	v := &Video{
		ID:           id,
		Title:        meta.Title,
		VideoFile:    meta.VideoFile,
		Source:       source,
		LastLoadedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if meta.Poster != "" {
		poster := meta.Poster
		v.Poster = &poster
	}
	return v
}
