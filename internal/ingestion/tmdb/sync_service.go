package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

// SyncResult is the outcome reported to callers of a sync run
type SyncResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *SyncData `json:"data,omitempty"`
}

// SyncData carries the counters of a sync run
type SyncData struct {
	NewGenres      int `json:"new_genres,omitempty"`
	NewMovies      int `json:"new_movies,omitempty"`
	TotalProcessed int `json:"total_processed"`
}

// SyncService pulls genres and popular movies from TMDB into the catalog
type SyncService struct {
	client    API
	movieRepo repository.MovieRepository
	genreRepo repository.GenreRepository
	maxPages  int
	logger    *slog.Logger

	// pause between page fetch retries
	pageRetryDelay time.Duration
}

func NewSyncService(client API, movieRepo repository.MovieRepository, genreRepo repository.GenreRepository, maxPages int, logger *slog.Logger) *SyncService {
	if maxPages < 1 {
		maxPages = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		client:         client,
		movieRepo:      movieRepo,
		genreRepo:      genreRepo,
		maxPages:       maxPages,
		logger:         logger,
		pageRetryDelay: 2 * time.Second,
	}
}

// SyncGenres fetches the genre list and inserts the ones not seen before.
// Genre ids are the provider's own, so existing rows are left untouched.
func (s *SyncService) SyncGenres(ctx context.Context) (*SyncResult, error) {
	genres, err := s.client.GetGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	existing, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing genres: %w", err)
	}

	known := make(map[int]bool, len(existing))
	for _, g := range existing {
		known[g.ID] = true
	}

	var toCreate []models.Genre
	for _, g := range genres {
		if !known[g.ID] {
			toCreate = append(toCreate, models.Genre{ID: g.ID, Name: g.Name})
		}
	}

	if len(toCreate) > 0 {
		if err := s.genreRepo.CreateBatch(ctx, toCreate); err != nil {
			return nil, fmt.Errorf("failed to store genres: %w", err)
		}
	}

	s.logger.Info("genre sync complete", "fetched", len(genres), "new", len(toCreate))

	return &SyncResult{
		Success: true,
		Message: fmt.Sprintf("Successfully synced %d genres", len(toCreate)),
		Data: &SyncData{
			NewGenres:      len(toCreate),
			TotalProcessed: len(genres),
		},
	}, nil
}

// SyncMovies walks the popular movie pages up to maxPages and stores the
// movies the catalog has not seen yet. A page that keeps failing is skipped
// rather than aborting the whole run.
func (s *SyncService) SyncMovies(ctx context.Context) (*SyncResult, error) {
	genreByID, err := s.loadGenres(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var fetched []Movie

	page := 1
	for page <= s.maxPages {
		list, err := s.client.GetMovies(ctx, page)
		if err != nil {
			s.logger.Warn("failed to fetch movie page, retrying once", "page", page, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.pageRetryDelay):
			}

			if list, err = s.client.GetMovies(ctx, page); err != nil {
				s.logger.Error("skipping movie page after retry", "page", page, "error", err)
				page++
				continue
			}
		}

		for _, m := range list.Movies {
			if seen[m.TmdbID] {
				continue
			}
			seen[m.TmdbID] = true
			fetched = append(fetched, m)
		}

		if page >= list.TotalPages {
			break
		}
		page++
	}

	newMovies, refreshed, err := s.store(ctx, fetched, genreByID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("movie sync complete", "fetched", len(fetched), "new", newMovies, "refreshed", refreshed)

	return &SyncResult{
		Success: true,
		Message: fmt.Sprintf("Successfully synced %d movies", newMovies),
		Data: &SyncData{
			NewMovies:      newMovies,
			TotalProcessed: len(fetched),
		},
	}, nil
}

// SyncAll runs a genre sync first so new movies can resolve their genre ids
func (s *SyncService) SyncAll(ctx context.Context) (*SyncResult, error) {
	genreResult, err := s.SyncGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("genre sync failed: %w", err)
	}

	movieResult, err := s.SyncMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("movie sync failed: %w", err)
	}

	return &SyncResult{
		Success: true,
		Message: fmt.Sprintf("Successfully synced %d genres and %d movies",
			genreResult.Data.NewGenres, movieResult.Data.NewMovies),
		Data: &SyncData{
			NewGenres:      genreResult.Data.NewGenres,
			NewMovies:      movieResult.Data.NewMovies,
			TotalProcessed: genreResult.Data.TotalProcessed + movieResult.Data.TotalProcessed,
		},
	}, nil
}

func (s *SyncService) loadGenres(ctx context.Context) (map[int]models.Genre, error) {
	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	byID := make(map[int]models.Genre, len(genres))
	for _, g := range genres {
		byID[g.ID] = g
	}
	return byID, nil
}

// store creates movies the catalog has not seen and refreshes the provider
// vote stats on the ones it has. A single movie failing to save is logged and
// skipped.
func (s *SyncService) store(ctx context.Context, fetched []Movie, genreByID map[int]models.Genre) (created, refreshed int, err error) {
	if len(fetched) == 0 {
		return 0, 0, nil
	}

	tmdbIDs := make([]int, 0, len(fetched))
	for _, m := range fetched {
		tmdbIDs = append(tmdbIDs, m.TmdbID)
	}

	existing, err := s.movieRepo.GetByTmdbIDs(ctx, tmdbIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to check existing movies: %w", err)
	}

	known := make(map[int]*models.Movie, len(existing))
	for i := range existing {
		if existing[i].TmdbID != nil {
			known[*existing[i].TmdbID] = &existing[i]
		}
	}

	for _, m := range fetched {
		if row, ok := known[m.TmdbID]; ok {
			// Popularity and vote stats drift between syncs; local
			// average_rating and rating_count stay untouched.
			row.VoteAverage = m.VoteAverage
			row.VoteCount = m.VoteCount
			row.Popularity = m.Popularity
			if err := s.movieRepo.Save(ctx, row); err != nil {
				s.logger.Error("failed to refresh movie, skipping", "tmdb_id", m.TmdbID, "title", m.Title, "error", err)
				continue
			}
			refreshed++
			continue
		}

		movie := toModel(m, genreByID)
		if err := s.movieRepo.Create(ctx, movie); err != nil {
			s.logger.Error("failed to store movie, skipping", "tmdb_id", m.TmdbID, "title", m.Title, "error", err)
			continue
		}
		created++
	}

	return created, refreshed, nil
}

// toModel converts a fetched movie into a catalog row
func toModel(m Movie, genreByID map[int]models.Genre) *models.Movie {
	tmdbID := m.TmdbID
	movie := &models.Movie{
		Title:       m.Title,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
		TmdbID:      &tmdbID,
	}

	if m.Overview != "" {
		overview := m.Overview
		movie.Overview = &overview
	}
	if m.PosterPath != "" {
		poster := m.PosterPath
		movie.PosterPath = &poster
	}
	if m.BackdropPath != "" {
		backdrop := m.BackdropPath
		movie.BackdropPath = &backdrop
	}
	if m.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
			movie.ReleaseDate = &t
		}
	}

	for _, id := range m.GenreIDs {
		if g, ok := genreByID[id]; ok {
			movie.Genres = append(movie.Genres, g)
		}
	}

	return movie
}
