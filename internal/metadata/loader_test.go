package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidarkiv/internal/config"
)

const (
	testVideoID = "3f2b8c1e-9d4a-4e6b-8a7c-0d1e2f3a4b5c"
	testMeta    = `{"itemID":"3f2b8c1e-9d4a-4e6b-8a7c-0d1e2f3a4b5c","videoFile":"talk.mp4","title":"Talk","slides":[{"title":["A"],"startTime":["0"],"isChapter":["false"],"isCued":["true"]}]}`
)

func TestDecode(t *testing.T) {
	meta, err := Decode([]byte(testMeta))
	require.NoError(t, err)
	assert.Equal(t, "Talk", meta.Title)
	require.Len(t, meta.Slides, 1)
	assert.Equal(t, "A", meta.Slides[0].Title)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"title": "unterminated`))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "parse meta.json")
}

func TestMetaKey(t *testing.T) {
	assert.Equal(t, "data/video/abc/meta.json", MetaKey("data/video", "abc"))
	assert.Equal(t, "abc/meta.json", MetaKey("", "abc"))
}

func writeMeta(t *testing.T, dataDir, videoID, body string) {
	t.Helper()
	dir := filepath.Join(dataDir, "video", videoID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFileName), []byte(body), 0o644))
}

func TestFileLoader(t *testing.T) {
	dataDir := t.TempDir()
	writeMeta(t, dataDir, testVideoID, testMeta)
	loader := NewFileLoader(dataDir)
	ctx := context.Background()

	t.Run("existing video", func(t *testing.T) {
		meta, err := loader.Load(ctx, testVideoID)
		require.NoError(t, err)
		assert.Equal(t, "talk.mp4", meta.VideoFile)
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := loader.Load(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrVideoNotFound)
	})

	t.Run("malformed document", func(t *testing.T) {
		badID := "11111111-1111-1111-1111-111111111111"
		writeMeta(t, dataDir, badID, "{not json")
		_, err := loader.Load(ctx, badID)
		assert.True(t, IsParseError(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(cctx, testVideoID)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/archive/data/video/"+testVideoID+"/meta.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(testMeta))
		case strings.Contains(r.URL.Path, "22222222"):
			_, _ = w.Write([]byte("<html>not json</html>"))
		case strings.Contains(r.URL.Path, "33333333"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewHTTPLoaderWithClient(srv.URL+"/archive", srv.Client())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		meta, err := loader.Load(ctx, testVideoID)
		require.NoError(t, err)
		assert.Equal(t, "Talk", meta.Title)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := loader.Load(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrVideoNotFound)
	})

	t.Run("server error counts as not found", func(t *testing.T) {
		_, err := loader.Load(ctx, "33333333-3333-3333-3333-333333333333")
		assert.ErrorIs(t, err, ErrVideoNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := loader.Load(ctx, "22222222-2222-2222-2222-222222222222")
		require.Error(t, err)
		assert.True(t, IsParseError(err))
	})
}

func TestHTTPLoader_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader(url, 0).Load(context.Background(), testVideoID)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsParseError(err))
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{Archive: config.ArchiveConfig{Source: config.SourceFile, DataDir: t.TempDir()}}
	loader, err := NewFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileLoader{}, loader)

	cfg.Archive.Source = config.SourceHTTP
	cfg.Archive.BaseURL = "http://archive.invalid"
	loader, err = NewFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &HTTPLoader{}, loader)

	cfg.Archive.Source = "ftp"
	_, err = NewFromConfig(context.Background(), cfg)
	assert.Error(t, err)
}
