package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository interface {
	List(ctx context.Context, page, limit int, genres []string) ([]models.Movie, int64, error)
	Search(ctx context.Context, query string, page, limit int) ([]models.Movie, int64, error)
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	GetByTmdbIDs(ctx context.Context, tmdbIDs []int) ([]models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Save(ctx context.Context, m *models.Movie) error

	// Transaction-scoped methods used by the rating aggregator.
	GetByIDForUpdate(tx *gorm.DB, id string) (*models.Movie, error)
	UpdateAggregates(tx *gorm.DB, id string, averageRating float64, ratingCount int64) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// List returns a page of movies ordered by popularity. A non-empty genres
// filter keeps every movie that has at least one of the given genre names
// (OR semantics, not AND).
func (r *movieRepository) List(ctx context.Context, page, limit int, genres []string) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Movie{})
	if len(genres) > 0 {
		// IN-subquery on the join table keeps the count free of join duplicates
		sub := r.db.Table("movie_genres").
			Select("movie_genres.movie_id").
			Joins("JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.name IN ?", genres)
		q = q.Where("movies.id IN (?)", sub)
	}

	// Count total records ignoring pagination
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.
		Preload("Genres").
		Order("popularity desc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// Search performs a case-insensitive substring match on title or overview.
func (r *movieRepository) Search(ctx context.Context, query string, page, limit int) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).Model(&models.Movie{}).
		Where("title ILIKE ? OR COALESCE(overview,'') ILIKE ?", pattern, pattern)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.
		Preload("Genres").
		Order("popularity desc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *movieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Preload("Genres").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) GetByTmdbIDs(ctx context.Context, tmdbIDs []int) ([]models.Movie, error) {
	var list []models.Movie
	if len(tmdbIDs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("tmdb_id IN ?", tmdbIDs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get movies by tmdb ids: %w", err)
	}
	return list, nil
}

func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *movieRepository) Save(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error; err != nil {
		return fmt.Errorf("save movie: %w", err)
	}
	return nil
}

// GetByIDForUpdate fetches the movie row with an exclusive lock. Callers must
// run inside a transaction; the lock serializes aggregate recomputation per
// movie until that transaction commits.
func (r *movieRepository) GetByIDForUpdate(tx *gorm.DB, id string) (*models.Movie, error) {
	var m models.Movie
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) UpdateAggregates(tx *gorm.DB, id string, averageRating float64, ratingCount int64) error {
	return tx.Model(&models.Movie{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"rating_count":   ratingCount,
		}).Error
}
