package handler

import (
	"context"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type mockMovieService struct {
	mock.Mock
}

func (m *mockMovieService) List(ctx context.Context, page, limit int, genres []string) (*dto.MovieListResponse, error) {
	args := m.Called(ctx, page, limit, genres)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieListResponse), args.Error(1)
}

func (m *mockMovieService) Search(ctx context.Context, query string, page, limit int) (*dto.MovieListResponse, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieListResponse), args.Error(1)
}

func (m *mockMovieService) Get(ctx context.Context, id string) (*dto.MovieResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

type mockRatingService struct {
	mock.Mock
}

func (m *mockRatingService) RateMovie(ctx context.Context, movieID, userID string, value float64) (*dto.RatingStatsResponse, error) {
	args := m.Called(ctx, movieID, userID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingStatsResponse), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SignUp(username, password, fullName string) (*dto.UserResponse, error) {
	args := m.Called(username, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *mockAuthService) Login(username, password string) (*dto.LoginResponse, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *mockAuthService) Logout(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *mockAuthService) Refresh(userID, refreshToken string) (*dto.TokenPairResponse, error) {
	args := m.Called(userID, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *mockAuthService) ValidateAccessToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *mockAuthService) ValidateRefreshToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

type mockWatchlistService struct {
	mock.Mock
}

func (m *mockWatchlistService) List(ctx context.Context, userID string) ([]dto.WatchlistItemResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.WatchlistItemResponse), args.Error(1)
}

func (m *mockWatchlistService) Add(ctx context.Context, userID, movieID string) (*dto.WatchlistItemResponse, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WatchlistItemResponse), args.Error(1)
}

func (m *mockWatchlistService) Remove(ctx context.Context, userID, movieID string) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

// fakeAuth injects an authenticated user the way AuthMiddleware would
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "tester")
		c.Next()
	}
}
