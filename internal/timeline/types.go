package timeline

// OpenEnded is the end time given to a slide with no later slide to end it.
// The player treats it as "until the media ends".
const OpenEnded = 99999

// OverlayTarget is the id of the element overlays are rendered into
const OverlayTarget = "slides"

// SlideOverlay is a timed caption registered with the media player as a
// footnote. Text holds ready-to-insert HTML.
type SlideOverlay struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Target string  `json:"target"`
	Text   string  `json:"text"`
}

// ChapterMark is one option of the chapter selector
type ChapterMark struct {
	StartSeconds float64 `json:"start_seconds"`
	Label        string  `json:"label"`
}

// SkipReason explains why an entry produced neither an overlay nor a chapter
type SkipReason string

const (
	// SkipNotCued marks draft entries that are not ready for display
	SkipNotCued SkipReason = "not_cued"

	// SkipZeroDuration marks slides whose computed end equals their start
	SkipZeroDuration SkipReason = "zero_duration"

	// SkipNoBoundary marks chapter entries without a chapter boundary
	SkipNoBoundary SkipReason = "no_boundary"
)

// SkippedEntry records a slide list entry dropped while building
type SkippedEntry struct {
	Index  int        `json:"index"`
	Title  string     `json:"title"`
	Start  float64    `json:"start"`
	End    float64    `json:"end,omitempty"`
	Reason SkipReason `json:"reason"`
}

// Timeline is everything derived from one metadata document
type Timeline struct {
	Overlays []SlideOverlay `json:"overlays"`
	Chapters []ChapterMark  `json:"chapters"`
	Skipped  []SkippedEntry `json:"skipped,omitempty"`

	// HasSlides is set when at least one overlay was registered
	HasSlides bool `json:"has_slides"`

	// NoChapters is set when the slide list produced no chapter marks
	NoChapters bool `json:"no_chapters"`
}

// SeekTable maps chapter selector indexes to seek times in seconds
func (t *Timeline) SeekTable() []float64 {
	table := make([]float64, len(t.Chapters))
	for i, ch := range t.Chapters {
		table[i] = ch.StartSeconds
	}
	return table
}
