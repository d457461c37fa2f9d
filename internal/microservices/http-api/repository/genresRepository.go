package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	CreateBatch(ctx context.Context, genres []models.Genre) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

func (r *genreRepository) CreateBatch(ctx context.Context, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&genres).Error; err != nil {
		return fmt.Errorf("create genres: %w", err)
	}
	return nil
}
