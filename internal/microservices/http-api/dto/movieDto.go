package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

// MovieResponse is the public projection of a movie. Entities are never
// returned directly; genres are flattened to names and render as an empty
// array, never null.
type MovieResponse struct {
	ID            string     `json:"id"`
	BackdropPath  *string    `json:"backdrop_path"`
	TmdbID        *int       `json:"tmdb_id"`
	Overview      *string    `json:"overview"`
	Popularity    float64    `json:"popularity"`
	PosterPath    *string    `json:"poster_path"`
	ReleaseDate   *time.Time `json:"release_date"`
	Title         string     `json:"title"`
	VoteAverage   float64    `json:"vote_average"`
	VoteCount     int        `json:"vote_count"`
	AverageRating *float64   `json:"average_rating"`
	RatingCount   int        `json:"rating_count"`
	Genres        []string   `json:"genres"`
}

// FromModelToMovieResponse converts a Movie model to its public view
func FromModelToMovieResponse(m models.Movie) MovieResponse {
	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}

	return MovieResponse{
		ID:            m.ID,
		BackdropPath:  m.BackdropPath,
		TmdbID:        m.TmdbID,
		Overview:      m.Overview,
		Popularity:    m.Popularity,
		PosterPath:    m.PosterPath,
		ReleaseDate:   m.ReleaseDate,
		Title:         m.Title,
		VoteAverage:   m.VoteAverage,
		VoteCount:     m.VoteCount,
		AverageRating: m.AverageRating,
		RatingCount:   m.RatingCount,
		Genres:        genres,
	}
}

// MovieListResponse for paginated listing and search results
type MovieListResponse struct {
	Movies      []MovieResponse `json:"movies"`
	Total       int64           `json:"total"`
	TotalPages  int             `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
}

// NewMovieListResponse creates a paginated movie response
func NewMovieListResponse(movies []models.Movie, total int64, page, limit int) *MovieListResponse {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	responses := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		responses = append(responses, FromModelToMovieResponse(m))
	}

	return &MovieListResponse{
		Movies:      responses,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
