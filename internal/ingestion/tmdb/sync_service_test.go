package tmdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"moviehub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetGenres(ctx context.Context) ([]Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *mockAPI) GetMovies(ctx context.Context, page int) (*MovieList, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MovieList), args.Error(1)
}

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) List(ctx context.Context, page, limit int, genres []string) ([]models.Movie, int64, error) {
	args := m.Called(ctx, page, limit, genres)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepo) Search(ctx context.Context, query string, page, limit int) ([]models.Movie, int64, error) {
	args := m.Called(ctx, query, page, limit)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovieRepo) GetByTmdbIDs(ctx context.Context, tmdbIDs []int) ([]models.Movie, error) {
	args := m.Called(ctx, tmdbIDs)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) Save(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) GetByIDForUpdate(tx *gorm.DB, id string) (*models.Movie, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovieRepo) UpdateAggregates(tx *gorm.DB, id string, averageRating float64, ratingCount int64) error {
	args := m.Called(tx, id, averageRating, ratingCount)
	return args.Error(0)
}

type mockGenreRepo struct {
	mock.Mock
}

func (m *mockGenreRepo) GetAll(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *mockGenreRepo) CreateBatch(ctx context.Context, genres []models.Genre) error {
	args := m.Called(ctx, genres)
	return args.Error(0)
}

func newSyncFixture(maxPages int) (*mockAPI, *mockMovieRepo, *mockGenreRepo, *SyncService) {
	api := new(mockAPI)
	movieRepo := new(mockMovieRepo)
	genreRepo := new(mockGenreRepo)
	svc := NewSyncService(api, movieRepo, genreRepo, maxPages, nil)
	svc.pageRetryDelay = time.Millisecond
	return api, movieRepo, genreRepo, svc
}

func TestSyncGenres_OnlyInsertsNew(t *testing.T) {
	api, _, genreRepo, svc := newSyncFixture(1)

	api.On("GetGenres", mock.Anything).Return([]Genre{
		{ID: 28, Name: "Action"},
		{ID: 18, Name: "Drama"},
	}, nil)
	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{{ID: 28, Name: "Action"}}, nil)
	genreRepo.On("CreateBatch", mock.Anything, []models.Genre{{ID: 18, Name: "Drama"}}).Return(nil)

	result, err := svc.SyncGenres(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Data.NewGenres)
	assert.Equal(t, 2, result.Data.TotalProcessed)
	genreRepo.AssertExpectations(t)
}

func TestSyncGenres_NothingNew(t *testing.T) {
	api, _, genreRepo, svc := newSyncFixture(1)

	api.On("GetGenres", mock.Anything).Return([]Genre{{ID: 28, Name: "Action"}}, nil)
	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{{ID: 28, Name: "Action"}}, nil)

	result, err := svc.SyncGenres(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Data.NewGenres)
	genreRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestSyncMovies_CreatesNewAndRefreshesKnown(t *testing.T) {
	api, movieRepo, genreRepo, svc := newSyncFixture(1)

	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{{ID: 28, Name: "Action"}}, nil)
	api.On("GetMovies", mock.Anything, 1).Return(&MovieList{
		Movies: []Movie{
			{TmdbID: 100, Title: "Known Movie", Popularity: 55.5, VoteCount: 1200, GenreIDs: []int{28}},
			{TmdbID: 200, Title: "New Movie", GenreIDs: []int{28, 999}, ReleaseDate: "2024-03-01"},
		},
		CurrentPage: 1,
		TotalPages:  1,
	}, nil)

	known := 100
	movieRepo.On("GetByTmdbIDs", mock.Anything, []int{100, 200}).
		Return([]models.Movie{{ID: "m-known", TmdbID: &known, Popularity: 40}}, nil)
	// known movie gets its provider stats refreshed, not re-created
	movieRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
		return m.ID == "m-known" && m.Popularity == 55.5 && m.VoteCount == 1200
	})).Return(nil)
	movieRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
		// unknown genre ids are dropped, known ones resolved
		return m.Title == "New Movie" &&
			*m.TmdbID == 200 &&
			len(m.Genres) == 1 && m.Genres[0].Name == "Action" &&
			m.ReleaseDate != nil
	})).Return(nil)

	result, err := svc.SyncMovies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Data.NewMovies)
	assert.Equal(t, 2, result.Data.TotalProcessed)
	movieRepo.AssertExpectations(t)
}

func TestSyncMovies_DeduplicatesAcrossPages(t *testing.T) {
	api, movieRepo, genreRepo, svc := newSyncFixture(2)

	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{}, nil)
	api.On("GetMovies", mock.Anything, 1).Return(&MovieList{
		Movies:      []Movie{{TmdbID: 100, Title: "Movie A"}},
		CurrentPage: 1,
		TotalPages:  2,
	}, nil)
	// same movie appears again on page 2
	api.On("GetMovies", mock.Anything, 2).Return(&MovieList{
		Movies:      []Movie{{TmdbID: 100, Title: "Movie A"}, {TmdbID: 200, Title: "Movie B"}},
		CurrentPage: 2,
		TotalPages:  2,
	}, nil)

	movieRepo.On("GetByTmdbIDs", mock.Anything, []int{100, 200}).Return([]models.Movie{}, nil)
	movieRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := svc.SyncMovies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Data.NewMovies)
}

func TestSyncMovies_FailedSaveIsSkipped(t *testing.T) {
	api, movieRepo, genreRepo, svc := newSyncFixture(1)

	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{}, nil)
	api.On("GetMovies", mock.Anything, 1).Return(&MovieList{
		Movies:      []Movie{{TmdbID: 100, Title: "Bad"}, {TmdbID: 200, Title: "Good"}},
		CurrentPage: 1,
		TotalPages:  1,
	}, nil)

	movieRepo.On("GetByTmdbIDs", mock.Anything, []int{100, 200}).Return([]models.Movie{}, nil)
	movieRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
		return m.Title == "Bad"
	})).Return(errors.New("constraint violation"))
	movieRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
		return m.Title == "Good"
	})).Return(nil)

	result, err := svc.SyncMovies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Data.NewMovies)
	assert.Equal(t, 2, result.Data.TotalProcessed)
}

func TestSyncMovies_SkipsPageAfterFailedRetry(t *testing.T) {
	api, movieRepo, genreRepo, svc := newSyncFixture(2)

	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{}, nil)
	api.On("GetMovies", mock.Anything, 1).Return(nil, errors.New("network down")).Twice()
	api.On("GetMovies", mock.Anything, 2).Return(&MovieList{
		Movies:      []Movie{{TmdbID: 200, Title: "Movie B"}},
		CurrentPage: 2,
		TotalPages:  2,
	}, nil)

	movieRepo.On("GetByTmdbIDs", mock.Anything, []int{200}).Return([]models.Movie{}, nil)
	movieRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SyncMovies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Data.NewMovies)
	api.AssertExpectations(t)
}

func TestSyncAll(t *testing.T) {
	api, movieRepo, genreRepo, svc := newSyncFixture(1)

	api.On("GetGenres", mock.Anything).Return([]Genre{{ID: 28, Name: "Action"}}, nil)
	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{}, nil).Once()
	genreRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	genreRepo.On("GetAll", mock.Anything).Return([]models.Genre{{ID: 28, Name: "Action"}}, nil).Once()

	api.On("GetMovies", mock.Anything, 1).Return(&MovieList{
		Movies:      []Movie{{TmdbID: 100, Title: "Movie A", GenreIDs: []int{28}}},
		CurrentPage: 1,
		TotalPages:  1,
	}, nil)
	movieRepo.On("GetByTmdbIDs", mock.Anything, []int{100}).Return([]models.Movie{}, nil)
	movieRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Successfully synced 1 genres and 1 movies", result.Message)
	assert.Equal(t, 1, result.Data.NewGenres)
	assert.Equal(t, 1, result.Data.NewMovies)
}

func TestSyncAll_GenreFailureAborts(t *testing.T) {
	api, _, _, svc := newSyncFixture(1)

	api.On("GetGenres", mock.Anything).Return(nil, errors.New("api down"))

	result, err := svc.SyncAll(context.Background())

	assert.Nil(t, result)
	require.Error(t, err)
	api.AssertNotCalled(t, "GetMovies", mock.Anything, mock.Anything)
}
