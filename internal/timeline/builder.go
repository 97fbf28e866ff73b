// Package timeline derives the slide overlay timeline and chapter markers of an
// archived video from its ordered slide list.
package timeline

import (
	"fmt"
	"html"
	"math"

	"github.com/stwalsh4118/vidarkiv/internal/metadata"
	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// noSlideHTML is shown for a slide that has neither an image nor a title
const noSlideHTML = "<h2> * Error: no slide available * </h2>"

// Options controls how overlay captions refer to archive assets
type Options struct {
	// AssetBase is the URL prefix of per-video assets, e.g. "data/video"
	AssetBase string
	// SlideDir is the directory below a video holding slide images
	SlideDir string
}

// DefaultOptions matches the standard archive layout
var DefaultOptions = Options{AssetBase: "data/video", SlideDir: "timeline"}

// FindFirst returns the index of the first item at or after from that
// satisfies match.
func FindFirst[T any](items []T, from int, match func(T) bool) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(items); i++ {
		if match(items[i]) {
			return i, true
		}
	}
	return -1, false
}

func isChapter(e models.SlideEntry) bool { return e.IsChapter }

func isDisplayable(e models.SlideEntry) bool { return e.Displayable() }

// Build walks the slide list once and derives overlays and chapter marks.
// It has no side effects; anomalies are reported in Timeline.Skipped.
//
// A displayable slide ends where the next cued, non-chapter entry starts, or
// at OpenEnded when there is none. Overlays whose end equals their start are
// dropped. Equal start times are not special-cased: the first forward match
// wins.
func Build(meta *models.VideoMetadata, opts Options) *Timeline {
	tl := &Timeline{
		Overlays: []SlideOverlay{},
		Chapters: []ChapterMark{},
	}
	if meta == nil {
		tl.NoChapters = true
		return tl
	}

	slides := meta.Slides
	for i, entry := range slides {
		if !entry.IsCued {
			tl.skip(i, entry, 0, SkipNotCued)
			continue
		}

		if entry.IsChapter {
			// The scan includes the entry itself, which is its own boundary.
			if _, ok := FindFirst(slides, i, isChapter); !ok {
				tl.skip(i, entry, 0, SkipNoBoundary)
				continue
			}
			tl.Chapters = append(tl.Chapters, ChapterMark{
				StartSeconds: entry.StartTime,
				Label:        ChapterLabel(entry.StartTime, entry.Title),
			})
			continue
		}

		end := float64(OpenEnded)
		if next, ok := FindFirst(slides, i+1, isDisplayable); ok {
			end = slides[next].StartTime
		}

		if end == entry.StartTime {
			tl.skip(i, entry, end, SkipZeroDuration)
			continue
		}

		tl.Overlays = append(tl.Overlays, SlideOverlay{
			Start:  entry.StartTime,
			End:    end,
			Target: OverlayTarget,
			Text:   Caption(meta.ItemID, entry, opts),
		})
	}

	tl.HasSlides = len(tl.Overlays) > 0
	tl.NoChapters = len(tl.Chapters) == 0
	return tl
}

func (t *Timeline) skip(index int, entry models.SlideEntry, end float64, reason SkipReason) {
	t.Skipped = append(t.Skipped, SkippedEntry{
		Index:  index,
		Title:  entry.Title,
		Start:  entry.StartTime,
		End:    end,
		Reason: reason,
	})
}

// Caption returns the overlay HTML for a slide: its image when present,
// otherwise its escaped title, otherwise a placeholder.
func Caption(itemID string, entry models.SlideEntry, opts Options) string {
	switch {
	case entry.SlideURL != "":
		src := metadata.AssetURL(opts.AssetBase, itemID, opts.SlideDir, entry.SlideURL)
		return `<img src="` + html.EscapeString(src) + `">`
	case entry.Title != "":
		return "<h2>" + html.EscapeString(entry.Title) + "</h2>"
	default:
		return noSlideHTML
	}
}

// FormatChapterTime renders a start time as zero-padded HH-MM-SS.
// Hours wrap at 24.
func FormatChapterTime(seconds float64) string {
	total := int64(math.Floor(seconds))
	if total < 0 {
		total = 0
	}
	hours := (total / 3600) % 24
	minutes := (total / 60) % 60
	secs := total % 60
	return fmt.Sprintf("%02d-%02d-%02d", hours, minutes, secs)
}

// ChapterLabel is the selector text of a chapter
func ChapterLabel(start float64, title string) string {
	return FormatChapterTime(start) + " - " + title
}
