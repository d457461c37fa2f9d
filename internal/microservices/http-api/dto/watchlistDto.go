package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

type AddToWatchlistRequest struct {
	MovieID string `json:"movie_id" binding:"required,uuid"`
}

type WatchlistItemResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Movie     MovieResponse `json:"movie"`
	CreatedAt time.Time     `json:"created_at"`
}

func FromModelToWatchlistItemResponse(entry models.Watchlist) WatchlistItemResponse {
	item := WatchlistItemResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		CreatedAt: entry.CreatedAt,
	}
	if entry.Movie != nil {
		item.Movie = FromModelToMovieResponse(*entry.Movie)
	}
	return item
}
