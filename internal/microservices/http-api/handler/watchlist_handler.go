package handler

import (
	"errors"
	"net/http"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// RegisterRoutes registers watchlist routes (parent group applies auth)
func (h *WatchlistHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", h.Add)
	router.DELETE("/:movie_id", h.Remove)
}

// List returns the current user's watchlist, newest first
// GET /api/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.watchlistService.List(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": items})
}

// Add puts a movie on the current user's watchlist
// POST /api/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.AddToWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.watchlistService.Add(c.Request.Context(), userID.(string), req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyInWatchlist):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to watchlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Remove takes a movie off the current user's watchlist
// DELETE /api/watchlist/:movie_id
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), userID.(string), c.Param("movie_id")); err != nil {
		if errors.Is(err, service.ErrNotInWatchlist) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie removed from watchlist"})
}
