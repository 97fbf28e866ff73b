// Package metadata loads the per-video meta.json document from the archive.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// MetaFileName is the name of the per-video metadata document
const MetaFileName = "meta.json"

// ErrVideoNotFound is returned when the archive has no metadata for a video
var ErrVideoNotFound = errors.New("video not found")

// ParseError reports a metadata document that could not be decoded
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse meta.json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error means the video does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVideoNotFound)
}

// IsParseError checks if the error is a malformed metadata document
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Loader fetches the metadata document of one video. Implementations make a
// single attempt and never retry.
type Loader interface {
	Load(ctx context.Context, videoID string) (*models.VideoMetadata, error)
}

// Decode parses a meta.json body. Any decoding failure is a *ParseError.
func Decode(body []byte) (*models.VideoMetadata, error) {
	var meta models.VideoMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &meta, nil
}

// MetaKey returns the archive-relative key of a video's metadata document
// below prefix, e.g. "data/video/<id>/meta.json".
func MetaKey(prefix, videoID string) string {
	return path.Join(prefix, videoID, MetaFileName)
}
