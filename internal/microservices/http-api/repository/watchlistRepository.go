package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	Add(ctx context.Context, userID, movieID string) (*models.Watchlist, error)
	Remove(ctx context.Context, userID, movieID string) error
	List(ctx context.Context, userID string) ([]models.Watchlist, error)
	Exists(ctx context.Context, userID, movieID string) (bool, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Add(ctx context.Context, userID, movieID string) (*models.Watchlist, error) {
	entry := &models.Watchlist{
		UserID:  userID,
		MovieID: movieID,
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	// Reload with the movie and its genres for the response view
	var saved models.Watchlist
	if err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		First(&saved, "id = ?", entry.ID).Error; err != nil {
		return nil, fmt.Errorf("reload watchlist entry: %w", err)
	}
	return &saved, nil
}

func (r *watchlistRepository) Remove(ctx context.Context, userID, movieID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Watchlist{})

	if result.Error != nil {
		return fmt.Errorf("remove from watchlist: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *watchlistRepository) List(ctx context.Context, userID string) ([]models.Watchlist, error) {
	var entries []models.Watchlist

	if err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	return entries, nil
}

func (r *watchlistRepository) Exists(ctx context.Context, userID, movieID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Watchlist{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
