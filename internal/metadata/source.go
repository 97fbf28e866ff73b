package metadata

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/vidarkiv/internal/config"
)

// NewFromConfig builds the loader selected by archive.source
func NewFromConfig(ctx context.Context, cfg *config.Config) (Loader, error) {
	switch cfg.Archive.Source {
	case config.SourceFile:
		return NewFileLoader(cfg.Archive.DataDir), nil
	case config.SourceHTTP:
		return NewHTTPLoader(cfg.Archive.BaseURL, cfg.Archive.RequestTimeout), nil
	case config.SourceS3:
		return NewS3Loader(ctx, S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown archive source %q", cfg.Archive.Source)
	}
}
