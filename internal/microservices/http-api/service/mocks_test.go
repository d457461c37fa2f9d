package service

import (
	"context"
	"database/sql"

	"moviehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// mockTxRunner runs the transaction body directly with a nil handle; the
// mocked repositories ignore the handle anyway.
type mockTxRunner struct {
	mock.Mock
}

func (m *mockTxRunner) InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *gorm.DB) error) error {
	args := m.Called(ctx, opts)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type mockMovieRepository struct {
	mock.Mock
}

func (m *mockMovieRepository) List(ctx context.Context, page, limit int, genres []string) ([]models.Movie, int64, error) {
	args := m.Called(ctx, page, limit, genres)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepository) Search(ctx context.Context, query string, page, limit int) ([]models.Movie, int64, error) {
	args := m.Called(ctx, query, page, limit)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovieRepository) GetByTmdbIDs(ctx context.Context, tmdbIDs []int) ([]models.Movie, error) {
	args := m.Called(ctx, tmdbIDs)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *mockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepository) Save(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepository) GetByIDForUpdate(tx *gorm.DB, id string) (*models.Movie, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovieRepository) UpdateAggregates(tx *gorm.DB, id string, averageRating float64, ratingCount int64) error {
	args := m.Called(tx, id, averageRating, ratingCount)
	return args.Error(0)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) GetByUserAndMovie(tx *gorm.DB, userID, movieID string) (*models.Rating, error) {
	args := m.Called(tx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *mockRatingRepository) Create(tx *gorm.DB, rating *models.Rating) error {
	args := m.Called(tx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) Update(tx *gorm.DB, rating *models.Rating) error {
	args := m.Called(tx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) Aggregate(tx *gorm.DB, movieID string) (float64, int64, error) {
	args := m.Called(tx, movieID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) UpdateRefreshToken(userID string, refreshToken *string) error {
	args := m.Called(userID, refreshToken)
	return args.Error(0)
}

type mockWatchlistRepository struct {
	mock.Mock
}

func (m *mockWatchlistRepository) Add(ctx context.Context, userID, movieID string) (*models.Watchlist, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Watchlist), args.Error(1)
}

func (m *mockWatchlistRepository) Remove(ctx context.Context, userID, movieID string) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *mockWatchlistRepository) List(ctx context.Context, userID string) ([]models.Watchlist, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Watchlist), args.Error(1)
}

func (m *mockWatchlistRepository) Exists(ctx context.Context, userID, movieID string) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}
