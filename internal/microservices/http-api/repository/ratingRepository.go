package repository

import (
	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// RatingRepository methods all take the caller's transaction handle: the
// rating flow reads and writes ratings only inside the movie-row-locked
// transaction owned by the service.
type RatingRepository interface {
	GetByUserAndMovie(tx *gorm.DB, userID, movieID string) (*models.Rating, error)
	Create(tx *gorm.DB, rating *models.Rating) error
	Update(tx *gorm.DB, rating *models.Rating) error
	Aggregate(tx *gorm.DB, movieID string) (average float64, count int64, err error)
}

type ratingRepository struct{}

func NewRatingRepository() RatingRepository {
	return &ratingRepository{}
}

// GetByUserAndMovie retrieves a user's rating for a specific movie
func (r *ratingRepository) GetByUserAndMovie(tx *gorm.DB, userID, movieID string) (*models.Rating, error) {
	var rating models.Rating
	err := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Create(tx *gorm.DB, rating *models.Rating) error {
	return tx.Create(rating).Error
}

func (r *ratingRepository) Update(tx *gorm.DB, rating *models.Rating) error {
	return tx.Save(rating).Error
}

// Aggregate recomputes AVG and COUNT over all ratings of a movie.
func (r *ratingRepository) Aggregate(tx *gorm.DB, movieID string) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}

	err := tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("movie_id = ?", movieID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Count, nil
}
