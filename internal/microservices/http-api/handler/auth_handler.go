package handler

import (
	"errors"
	"net/http"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers user/auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
	router.POST("/refresh", middleware.RefreshMiddleware(h.authService), h.Refresh)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.SignUp(req.Username, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrNameInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.authService.Logout(userID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

// Refresh rotates the token pair; RefreshMiddleware has already validated
// the refresh token and put it in the context.
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, exists := c.Get("userID")
	refreshToken, tokenExists := c.Get("refreshToken")
	if !exists || !tokenExists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tokens, err := h.authService.Refresh(userID.(string), refreshToken.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}
