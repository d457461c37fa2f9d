package service

import (
	"errors"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenClaims is the payload carried by both access and refresh tokens
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SignUp(username, password, fullName string) (*dto.UserResponse, error)
	Login(username, password string) (*dto.LoginResponse, error)
	Logout(userID string) error
	Refresh(userID, refreshToken string) (*dto.TokenPairResponse, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)
}

type authService struct {
	userRepo        repository.UserRepository
	accessSecret    string
	refreshSecret   string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:        userRepo,
		accessSecret:    cfg.JWTAccessSecret,
		refreshSecret:   cfg.JWTRefreshSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,  // 15 minutes
		refreshTokenTTL: cfg.RefreshTokenTTL, // 7 days
	}
}

// SignUp registers a new user with the given username, password, and full name.
func (s *authService) SignUp(username, password, fullName string) (*dto.UserResponse, error) {
	// Check if user exists
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrNameInUse
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
		FullName: fullName,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

// Login authenticates a user, issues an access/refresh token pair and stores
// the refresh token on the user row.
func (s *authService) Login(username, password string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// User not found, dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.FromModelToUserResponse(user),
	}, nil
}

// Logout clears the stored refresh token, invalidating future refreshes
func (s *authService) Logout(userID string) error {
	return s.userRepo.UpdateRefreshToken(userID, nil)
}

// Refresh rotates both tokens after checking the presented refresh token
// against the one stored at login.
func (s *authService) Refresh(userID, refreshToken string) (*dto.TokenPairResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	accessToken, newRefreshToken, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, &newRefreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *authService) generateTokens(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = s.signToken(user, "access", s.accessSecret, s.accessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.signToken(user, "refresh", s.refreshSecret, s.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *authService) signToken(user *models.User, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *authService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return s.parseToken(tokenString, "access", s.accessSecret)
}

func (s *authService) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.parseToken(tokenString, "refresh", s.refreshSecret)
}

func (s *authService) parseToken(tokenString, tokenType, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
