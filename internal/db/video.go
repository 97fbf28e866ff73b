package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/vidarkiv/internal/models"
	"gorm.io/gorm"
)

// VideoRepository handles catalog operations for archived videos
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID retrieves a catalog record by its GUID
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&video)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &video, nil
}

// List retrieves catalog records, most recently loaded first
func (r *VideoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	query := r.db.WithContext(ctx).Order("last_loaded_at DESC").Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	result := query.Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list videos: %w", MapGormError(result.Error))
	}
	return videos, nil
}

// Count returns the total number of catalog records
func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Video{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count videos: %w", MapGormError(result.Error))
	}
	return count, nil
}

// Upsert creates the record or refreshes an existing one, keeping its
// first CreatedAt. Runs in a single transaction.
func (r *VideoRepository) Upsert(ctx context.Context, video *models.Video) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var existing models.Video
		err := tx.Where("id = ?", video.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(video).Error; err != nil {
				return fmt.Errorf("failed to create video: %w", MapGormError(err))
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch video: %w", MapGormError(err))
		}

		video.CreatedAt = existing.CreatedAt
		video.UpdatedAt = time.Now().UTC()

		// Map-based update so zero counts are written
		updates := map[string]interface{}{
			"title":          video.Title,
			"video_file":     video.VideoFile,
			"poster":         video.Poster,
			"slide_count":    video.SlideCount,
			"chapter_count":  video.ChapterCount,
			"source":         video.Source,
			"last_loaded_at": video.LastLoadedAt,
			"updated_at":     video.UpdatedAt,
		}
		if err := tx.Model(&models.Video{}).Where("id = ?", video.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update video: %w", MapGormError(err))
		}
		return nil
	})
}

// Delete removes a catalog record by its GUID
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
