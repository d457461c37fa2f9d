package service

import (
	"context"
	"errors"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
	ErrNotInWatchlist     = errors.New("movie not found in watchlist")
)

type WatchlistService interface {
	List(ctx context.Context, userID string) ([]dto.WatchlistItemResponse, error)
	Add(ctx context.Context, userID, movieID string) (*dto.WatchlistItemResponse, error)
	Remove(ctx context.Context, userID, movieID string) error
}

type watchlistService struct {
	repo      repository.WatchlistRepository
	movieRepo repository.MovieRepository
}

func NewWatchlistService(repo repository.WatchlistRepository, movieRepo repository.MovieRepository) WatchlistService {
	return &watchlistService{
		repo:      repo,
		movieRepo: movieRepo,
	}
}

func (s *watchlistService) List(ctx context.Context, userID string) ([]dto.WatchlistItemResponse, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WatchlistItemResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromModelToWatchlistItemResponse(entry))
	}
	return items, nil
}

func (s *watchlistService) Add(ctx context.Context, userID, movieID string) (*dto.WatchlistItemResponse, error) {
	// Check if movie exists
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	// Check if already in watchlist
	exists, err := s.repo.Exists(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInWatchlist
	}

	entry, err := s.repo.Add(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}

	item := dto.FromModelToWatchlistItemResponse(*entry)
	return &item, nil
}

func (s *watchlistService) Remove(ctx context.Context, userID, movieID string) error {
	if err := s.repo.Remove(ctx, userID, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInWatchlist
		}
		return err
	}
	return nil
}
