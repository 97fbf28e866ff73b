package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// FileCheck is the result of checking an archive file before reading it
type FileCheck struct {
	Readable bool
	Reasons  []string
}

// Err folds the reasons into an error, or nil when the file is readable
func (c FileCheck) Err() error {
	if c.Readable {
		return nil
	}
	return fmt.Errorf("file not readable: %s", strings.Join(c.Reasons, ", "))
}

// CheckFile verifies that filePath is a regular, readable file no larger
// than maxBytes. A maxBytes of zero disables the size check.
func CheckFile(filePath string, maxBytes int64) FileCheck {
	result := FileCheck{Reasons: []string{}}

	info, err := os.Stat(filePath)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			result.Reasons = append(result.Reasons, "file does not exist")
		case os.IsPermission(err):
			result.Reasons = append(result.Reasons, "file is not readable (permission denied)")
		default:
			result.Reasons = append(result.Reasons, "file access error: "+err.Error())
		}
		return result
	}

	if info.IsDir() {
		result.Reasons = append(result.Reasons, "path is a directory, not a file")
		return result
	}

	if info.Size() == 0 {
		result.Reasons = append(result.Reasons, "file is empty")
		return result
	}

	if maxBytes > 0 && info.Size() > maxBytes {
		result.Reasons = append(result.Reasons, fmt.Sprintf("file exceeds %d bytes", maxBytes))
		return result
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsPermission(err) {
			result.Reasons = append(result.Reasons, "file is not readable (permission denied)")
		} else {
			result.Reasons = append(result.Reasons, "cannot open file: "+err.Error())
		}
		return result
	}
	_ = file.Close()

	result.Readable = true
	return result
}

// CheckAssets lists the files a document refers to that are missing from
// videoDir: the video, the poster and cued slide images.
func CheckAssets(videoDir string, meta *models.VideoMetadata, slideDir string) []string {
	var missing []string

	exists := func(rel string) bool {
		_, err := os.Stat(filepath.Join(videoDir, filepath.FromSlash(rel)))
		return !errors.Is(err, os.ErrNotExist)
	}

	if meta.VideoFile == "" || !exists(meta.VideoFile) {
		missing = append(missing, "video file "+quoteOrEmpty(meta.VideoFile))
	}

	if meta.Poster != "" && !exists(meta.Poster) {
		missing = append(missing, "poster "+quoteOrEmpty(meta.Poster))
	}

	for _, entry := range meta.Slides {
		if !entry.Displayable() || entry.SlideURL == "" {
			continue
		}
		rel := slideDir + "/" + entry.SlideURL
		if !exists(rel) {
			missing = append(missing, "slide "+quoteOrEmpty(rel))
		}
	}

	return missing
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}
