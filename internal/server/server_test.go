package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidarkiv/internal/config"
	"github.com/stwalsh4118/vidarkiv/internal/db"
	"github.com/stwalsh4118/vidarkiv/internal/middleware"
)

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, Host: "127.0.0.1"},
		Logging: config.LoggingConfig{Level: "info"},
		Archive: config.ArchiveConfig{
			Source:          config.SourceFile,
			DataDir:         dataDir,
			AssetBase:       "data/video",
			SlideDir:        "timeline",
			PlayerScriptURL: "scripts/popcorn-complete.min.js",
		},
	}
}

func setupServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, "file://../../migrations"))

	srv, err := New(context.Background(), cfg, database)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		_ = database.Close()
	})
	return srv
}

func TestServer_ServesWatchPageAndAssets(t *testing.T) {
	dataDir := t.TempDir()
	id := uuid.New().String()
	videoDir := filepath.Join(dataDir, "video", id)
	require.NoError(t, os.MkdirAll(videoDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(videoDir, "meta.json"),
		[]byte(`{"itemID":"`+id+`","videoFile":"v.mp4","title":"T","slides":[]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(videoDir, "v.mp4"), []byte("video"), 0o644))

	srv := setupServer(t, testConfig(dataDir))
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/?watch="+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	src := doc.Find("#ourvideo source").AttrOr("src", "")
	assert.Equal(t, "data/video/"+id+"/v.mp4", src)
	assert.True(t, doc.Find("body").HasClass("no-chapters"))

	req = httptest.NewRequest(http.MethodGet, "/"+src, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_ScanDir(t *testing.T) {
	cfg := testConfig(t.TempDir())
	srv := setupServer(t, cfg)
	assert.Equal(t, cfg.Archive.DataDir, srv.scanDir())

	httpCfg := testConfig(t.TempDir())
	httpCfg.Archive.Source = config.SourceHTTP
	httpCfg.Archive.BaseURL = "http://archive.invalid"
	srv = setupServer(t, httpCfg)
	assert.Empty(t, srv.scanDir())
}

func TestNew_UnknownSource(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Archive.Source = "ftp"

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()

	_, err = New(context.Background(), cfg, database)
	assert.Error(t, err)
}
