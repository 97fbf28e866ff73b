package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stwalsh4118/vidarkiv/internal/logger"
	"github.com/stwalsh4118/vidarkiv/internal/models"
)

// maxMetaBytes caps how much of a metadata response is read
const maxMetaBytes = 8 << 20

// HTTPLoader fetches metadata from a remote archive at
// {baseURL}/data/video/{id}/meta.json
type HTTPLoader struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLoader creates a loader for the archive rooted at baseURL
func NewHTTPLoader(baseURL string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewHTTPLoaderWithClient creates a loader that uses the given client
func NewHTTPLoaderWithClient(baseURL string, client *http.Client) *HTTPLoader {
	return &HTTPLoader{baseURL: baseURL, client: client}
}

// Load issues one GET for the video's metadata. Statuses in [200,400) count
// as success; anything else is ErrVideoNotFound.
func (l *HTTPLoader) Load(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	metaURL, err := url.JoinPath(l.baseURL, "data", "video", videoID, MetaFileName)
	if err != nil {
		return nil, fmt.Errorf("invalid archive base url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		logger.Log.Debug().
			Str("video_id", videoID).
			Str("url", metaURL).
			Int("status", resp.StatusCode).
			Msg("Metadata request returned non-success status")
		return nil, ErrVideoNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata response: %w", err)
	}

	return Decode(body)
}
