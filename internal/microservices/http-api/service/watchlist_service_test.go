package service

import (
	"context"
	"testing"

	"moviehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWatchlistAdd(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	movieRepo := new(mockMovieRepository)
	svc := NewWatchlistService(watchlistRepo, movieRepo)

	movie := &models.Movie{ID: "m-1", Title: "Dune"}
	entry := &models.Watchlist{ID: "w-1", UserID: "user-1", MovieID: "m-1", Movie: movie}

	movieRepo.On("GetByID", mock.Anything, "m-1").Return(movie, nil)
	watchlistRepo.On("Exists", mock.Anything, "user-1", "m-1").Return(false, nil)
	watchlistRepo.On("Add", mock.Anything, "user-1", "m-1").Return(entry, nil)

	item, err := svc.Add(context.Background(), "user-1", "m-1")

	require.NoError(t, err)
	assert.Equal(t, "w-1", item.ID)
	assert.Equal(t, "Dune", item.Movie.Title)
}

func TestWatchlistAdd_MovieMissing(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	movieRepo := new(mockMovieRepository)
	svc := NewWatchlistService(watchlistRepo, movieRepo)

	movieRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	item, err := svc.Add(context.Background(), "user-1", "missing")

	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	watchlistRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestWatchlistAdd_Duplicate(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	movieRepo := new(mockMovieRepository)
	svc := NewWatchlistService(watchlistRepo, movieRepo)

	movieRepo.On("GetByID", mock.Anything, "m-1").Return(&models.Movie{ID: "m-1"}, nil)
	watchlistRepo.On("Exists", mock.Anything, "user-1", "m-1").Return(true, nil)

	item, err := svc.Add(context.Background(), "user-1", "m-1")

	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrAlreadyInWatchlist)
}

func TestWatchlistRemove_NotThere(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	svc := NewWatchlistService(watchlistRepo, new(mockMovieRepository))

	watchlistRepo.On("Remove", mock.Anything, "user-1", "m-1").Return(gorm.ErrRecordNotFound)

	err := svc.Remove(context.Background(), "user-1", "m-1")

	assert.ErrorIs(t, err, ErrNotInWatchlist)
}

func TestWatchlistList(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	svc := NewWatchlistService(watchlistRepo, new(mockMovieRepository))

	entries := []models.Watchlist{
		{ID: "w-2", UserID: "user-1", MovieID: "m-2", Movie: &models.Movie{ID: "m-2", Title: "Dune"}},
		{ID: "w-1", UserID: "user-1", MovieID: "m-1", Movie: &models.Movie{ID: "m-1", Title: "Heat"}},
	}
	watchlistRepo.On("List", mock.Anything, "user-1").Return(entries, nil)

	items, err := svc.List(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dune", items[0].Movie.Title)
}

func TestWatchlistList_Empty(t *testing.T) {
	watchlistRepo := new(mockWatchlistRepository)
	svc := NewWatchlistService(watchlistRepo, new(mockMovieRepository))

	watchlistRepo.On("List", mock.Anything, "user-1").Return([]models.Watchlist{}, nil)

	items, err := svc.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
