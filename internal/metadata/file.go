package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// FileLoader reads metadata from a local archive laid out as
// {dataDir}/video/{id}/meta.json
type FileLoader struct {
	dataDir string
}

// NewFileLoader creates a loader for the archive rooted at dataDir
func NewFileLoader(dataDir string) *FileLoader {
	return &FileLoader{dataDir: dataDir}
}

// MetaPath returns the on-disk path of a video's metadata document
func (l *FileLoader) MetaPath(videoID string) string {
	return filepath.Join(l.dataDir, "video", videoID, MetaFileName)
}

// Load reads and decodes the video's metadata document
func (l *FileLoader) Load(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := os.ReadFile(l.MetaPath(videoID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	return Decode(body)
}
