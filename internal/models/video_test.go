package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedMeta = `{
	"itemID": "0b5bdb4e-3a2c-4c8e-9f4e-1f2d3c4b5a69",
	"videoFile": "lecture.mp4",
	"title": "Budget hearing",
	"poster": "poster.jpg",
	"slideScreenPosition": ["left"],
	"slides": [
		{"title": ["Opening"], "startTime": ["0"], "isChapter": ["true"], "isCued": ["true"], "slideURL": [""]},
		{"title": ["Agenda"], "startTime": ["12.5"], "isChapter": ["false"], "isCued": ["true"], "slideURL": ["agenda.png"]},
		{"title": ["Draft"], "startTime": ["30"], "isChapter": ["false"], "isCued": ["false"], "slideURL": []}
	]
}`

func TestVideoMetadata_UnmarshalWrapped(t *testing.T) {
	var meta VideoMetadata
	require.NoError(t, json.Unmarshal([]byte(wrappedMeta), &meta))

	assert.Equal(t, "0b5bdb4e-3a2c-4c8e-9f4e-1f2d3c4b5a69", meta.ItemID)
	assert.Equal(t, "lecture.mp4", meta.VideoFile)
	assert.Equal(t, "Budget hearing", meta.Title)
	assert.Equal(t, "poster.jpg", meta.Poster)
	assert.True(t, meta.SlidesFirst())
	require.Len(t, meta.Slides, 3)

	assert.Equal(t, SlideEntry{Title: "Opening", StartTime: 0, IsChapter: true, IsCued: true}, meta.Slides[0])
	assert.Equal(t, SlideEntry{Title: "Agenda", StartTime: 12.5, IsCued: true, SlideURL: "agenda.png"}, meta.Slides[1])
	assert.Equal(t, SlideEntry{Title: "Draft", StartTime: 30}, meta.Slides[2])
}

func TestVideoMetadata_UnmarshalPlain(t *testing.T) {
	doc := `{
		"itemID": "abc",
		"videoFile": "v.mp4",
		"title": "Plain",
		"slides": [
			{"title": "A", "startTime": 0, "isChapter": false, "isCued": true},
			{"title": "B", "startTime": 10}
		]
	}`

	var meta VideoMetadata
	require.NoError(t, json.Unmarshal([]byte(doc), &meta))

	assert.False(t, meta.SlidesFirst())
	assert.Empty(t, meta.Poster)
	require.Len(t, meta.Slides, 2)
	assert.True(t, meta.Slides[0].Displayable())
	// Missing flags default to a cued, non-chapter slide
	assert.True(t, meta.Slides[1].IsCued)
	assert.False(t, meta.Slides[1].IsChapter)
	assert.Equal(t, 10.0, meta.Slides[1].StartTime)
}

func TestSlideEntry_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative start", `{"startTime": -1}`},
		{"non numeric start", `{"startTime": ["soon"]}`},
		{"NaN start", `{"startTime": ["NaN"]}`},
		{"infinite start", `{"startTime": "Inf"}`},
		{"negative infinite start", `{"startTime": ["-Infinity"]}`},
		{"numeric flag", `{"isChapter": [1]}`},
		{"title object", `{"title": {"text": "x"}}`},
		{"not an object", `["title"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SlideEntry
			assert.Error(t, json.Unmarshal([]byte(tt.doc), &s))
		})
	}
}

func TestSlideEntry_UnknownFlagStrings(t *testing.T) {
	var s SlideEntry
	require.NoError(t, json.Unmarshal([]byte(`{"isChapter": ["maybe"], "isCued": ["pending"]}`), &s))
	assert.False(t, s.IsChapter)
	assert.True(t, s.IsCued)

	require.NoError(t, json.Unmarshal([]byte(`{"isChapter": ["TRUE"], "isCued": [" False "]}`), &s))
	assert.True(t, s.IsChapter)
	assert.False(t, s.IsCued)
}

func TestSlideEntry_Displayable(t *testing.T) {
	assert.True(t, SlideEntry{IsCued: true}.Displayable())
	assert.False(t, SlideEntry{IsCued: true, IsChapter: true}.Displayable())
	assert.False(t, SlideEntry{IsCued: false}.Displayable())
}

func TestNewVideo(t *testing.T) {
	meta := &VideoMetadata{Title: "Hearing", VideoFile: "h.mp4"}
	v := NewVideo("id-1", meta, VideoSourceWatch)

	assert.Equal(t, "id-1", v.ID)
	assert.Equal(t, "Hearing", v.Title)
	assert.Equal(t, "h.mp4", v.VideoFile)
	assert.Nil(t, v.Poster)
	assert.Equal(t, VideoSourceWatch, v.Source)
	assert.False(t, v.LastLoadedAt.IsZero())

	meta.Poster = "p.jpg"
	v = NewVideo("id-2", meta, VideoSourceScan)
	require.NotNil(t, v.Poster)
	assert.Equal(t, "p.jpg", *v.Poster)
}
