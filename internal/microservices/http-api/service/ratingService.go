package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

const (
	msgRated        = "Movie rated successfully"
	msgRatingUpdate = "Movie rating updated successfully"
)

type RatingService interface {
	RateMovie(ctx context.Context, movieID, userID string, value float64) (*dto.RatingStatsResponse, error)
}

type ratingService struct {
	tx         repository.TxRunner
	movieRepo  repository.MovieRepository
	ratingRepo repository.RatingRepository
}

func NewRatingService(tx repository.TxRunner, movieRepo repository.MovieRepository, ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{
		tx:         tx,
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
	}
}

// RateMovie records or updates the user's rating for a movie and recomputes
// the movie's aggregate statistics, all in one transaction. The exclusive
// lock on the movie row serializes concurrent submissions per movie; ratings
// for different movies proceed independently.
func (s *ratingService) RateMovie(ctx context.Context, movieID, userID string, value float64) (*dto.RatingStatsResponse, error) {
	var stats *dto.RatingStatsResponse

	txOpts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	err := s.tx.InTx(ctx, txOpts, func(tx *gorm.DB) error {
		movie, err := s.movieRepo.GetByIDForUpdate(tx, movieID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMovieNotFound
			}
			return err
		}

		existing, err := s.ratingRepo.GetByUserAndMovie(tx, userID, movie.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		message := msgRated
		if existing != nil {
			existing.Rating = value
			if err := s.ratingRepo.Update(tx, existing); err != nil {
				return err
			}
			message = msgRatingUpdate
		} else {
			rating := &models.Rating{
				UserID:  userID,
				MovieID: movie.ID,
				Rating:  value,
			}
			if err := s.ratingRepo.Create(tx, rating); err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// Lost an insert race on the (user, movie) unique index.
				// The movie row lock makes this unreachable today, but if
				// the lock scope ever narrows we resolve it as an update.
				existing, err = s.ratingRepo.GetByUserAndMovie(tx, userID, movie.ID)
				if err != nil {
					return err
				}
				existing.Rating = value
				if err := s.ratingRepo.Update(tx, existing); err != nil {
					return err
				}
				message = msgRatingUpdate
			}
		}

		average, count, err := s.ratingRepo.Aggregate(tx, movie.ID)
		if err != nil {
			return err
		}
		rounded := math.Round(average*10) / 10

		if err := s.movieRepo.UpdateAggregates(tx, movie.ID, rounded, count); err != nil {
			return err
		}

		stats = &dto.RatingStatsResponse{
			AverageRating: rounded,
			RatingCount:   count,
			Message:       message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
