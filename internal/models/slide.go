package models

import (
	"encoding/json"
	"fmt"
)

// SlideEntry is one record of a video's ordered slide list. An entry is either
// a displayable slide or a chapter marker.
type SlideEntry struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"startTime"` // seconds
	IsChapter bool    `json:"isChapter"`
	IsCued    bool    `json:"isCued"`
	SlideURL  string  `json:"slideURL,omitempty"`
}

type slideEntryWire struct {
	Title     json.RawMessage `json:"title"`
	StartTime json.RawMessage `json:"startTime"`
	IsChapter json.RawMessage `json:"isChapter"`
	IsCued    json.RawMessage `json:"isCued"`
	SlideURL  json.RawMessage `json:"slideURL"`
}

// UnmarshalJSON accepts plain and array-wrapped fields. A missing or
// unrecognized isCued means the entry is cued.
func (s *SlideEntry) UnmarshalJSON(data []byte) error {
	var w slideEntryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var (
		out SlideEntry
		err error
	)
	if out.Title, err = decodeText(w.Title); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if out.StartTime, err = decodeSeconds(w.StartTime); err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	if out.StartTime < 0 {
		return fmt.Errorf("startTime: negative value %v", out.StartTime)
	}
	if out.IsChapter, _, err = decodeFlag(w.IsChapter); err != nil {
		return fmt.Errorf("isChapter: %w", err)
	}
	cued, present, err := decodeFlag(w.IsCued)
	if err != nil {
		return fmt.Errorf("isCued: %w", err)
	}
	out.IsCued = cued || !present
	if out.SlideURL, err = decodeText(w.SlideURL); err != nil {
		return fmt.Errorf("slideURL: %w", err)
	}

	*s = out
	return nil
}

// Displayable reports whether the entry can become a slide overlay.
func (s SlideEntry) Displayable() bool {
	return s.IsCued && !s.IsChapter
}
