package service

import (
	"context"
	"errors"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type MovieService interface {
	List(ctx context.Context, page, limit int, genres []string) (*dto.MovieListResponse, error)
	Search(ctx context.Context, query string, page, limit int) (*dto.MovieListResponse, error)
	Get(ctx context.Context, id string) (*dto.MovieResponse, error)
}

type movieService struct {
	repo repository.MovieRepository
}

func NewMovieService(repo repository.MovieRepository) MovieService {
	return &movieService{repo: repo}
}

// List returns a page of movies ordered by popularity, optionally filtered
// to movies having at least one of the given genre names.
func (s *movieService) List(ctx context.Context, page, limit int, genres []string) (*dto.MovieListResponse, error) {
	movies, total, err := s.repo.List(ctx, page, limit, genres)
	if err != nil {
		return nil, err
	}
	return dto.NewMovieListResponse(movies, total, page, limit), nil
}

// Search matches the query case-insensitively against title or overview
func (s *movieService) Search(ctx context.Context, query string, page, limit int) (*dto.MovieListResponse, error) {
	movies, total, err := s.repo.Search(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewMovieListResponse(movies, total, page, limit), nil
}

func (s *movieService) Get(ctx context.Context, id string) (*dto.MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	resp := dto.FromModelToMovieResponse(*movie)
	return &resp, nil
}
