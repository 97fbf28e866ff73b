package watch

import (
	"strings"

	"github.com/stwalsh4118/vidarkiv/internal/timeline"
)

// Body classes read by the stylesheet
const (
	ClassLoaded     = "has-loaded"
	ClassHasSlides  = "has-slides"
	ClassNoChapters = "no-chapters"
	ClassError      = "has-error"
)

const (
	// TemplateName is the name the page template is registered under
	TemplateName = "watch"

	defaultPageTitle = "Videoarkiv"
	errorPrefix      = "Can't play video because of an error: `"
)

// Page is the view model of the watch page
type Page struct {
	Title        string
	BodyClass    string
	ErrorMessage string

	Loaded       bool
	VideoURL     string
	PosterURL    string
	DownloadName string
	SlidesFirst  bool

	Chapters  []timeline.ChapterMark
	Overlays  []timeline.SlideOverlay
	SeekTable []float64

	PlayerScriptURL string
}

// DownloadTitle is the tooltip of the download link
func (p *Page) DownloadTitle() string {
	return "Last ned " + p.DownloadName
}

// NewPage builds the page for an opened session
func NewPage(session *timeline.Session, playerScriptURL string) *Page {
	tl := session.Timeline

	classes := []string{ClassLoaded}
	if tl.HasSlides {
		classes = append(classes, ClassHasSlides)
	}
	if tl.NoChapters {
		classes = append(classes, ClassNoChapters)
	}

	title := session.Meta.Title
	if title == "" {
		title = defaultPageTitle
	}

	return &Page{
		Title:           title,
		BodyClass:       strings.Join(classes, " "),
		Loaded:          true,
		VideoURL:        session.VideoURL(),
		PosterURL:       session.PosterURL(),
		DownloadName:    session.DownloadName(),
		SlidesFirst:     session.Meta.SlidesFirst(),
		Chapters:        tl.Chapters,
		Overlays:        tl.Overlays,
		SeekTable:       tl.SeekTable(),
		PlayerScriptURL: playerScriptURL,
	}
}

// NewErrorPage builds the page shown when the video cannot be played
func NewErrorPage(err error, playerScriptURL string) *Page {
	return &Page{
		Title:           defaultPageTitle,
		BodyClass:       ClassError,
		ErrorMessage:    errorPrefix + UserMessage(err) + "`",
		Overlays:        []timeline.SlideOverlay{},
		SeekTable:       []float64{},
		PlayerScriptURL: playerScriptURL,
	}
}
