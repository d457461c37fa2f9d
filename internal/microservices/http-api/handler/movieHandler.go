package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieService  service.MovieService
	ratingService service.RatingService
}

func NewMovieHandler(movieService service.MovieService, ratingService service.RatingService) *MovieHandler {
	return &MovieHandler{
		movieService:  movieService,
		ratingService: ratingService,
	}
}

// RegisterRoutes registers movie-related routes
func (h *MovieHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.GET("/search", h.Search)
	router.GET("/:movie_id", h.Get)
	router.POST("/:movie_id/rate", h.Rate)
}

// List returns a page of movies ordered by popularity
// GET /api/movies?page=1&limit=20&genres=Action,Drama
func (h *MovieHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	genres := genresParam(c)

	result, err := h.movieService.List(c.Request.Context(), page, limit, genres)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list movies"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Search matches the query against title or overview
// GET /api/movies/search?query=incep&page=1&limit=20
func (h *MovieHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	page, limit := paginationParams(c)

	result, err := h.movieService.Search(c.Request.Context(), query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search movies"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns a single movie by id
// GET /api/movies/:movie_id
func (h *MovieHandler) Get(c *gin.Context) {
	movie, err := h.movieService.Get(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get movie"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

// Rate creates or updates the current user's rating for a movie
// POST /api/movies/:movie_id/rate
func (h *MovieHandler) Rate(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.RateMovieDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// at most one decimal digit
	if math.Round(req.Rating*10)/10 != req.Rating {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be a number with at most 1 decimal place"})
		return
	}

	stats, err := h.ratingService.RateMovie(c.Request.Context(), c.Param("movie_id"), userID.(string), req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rate movie"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// genresParam parses the comma-separated genres filter
func genresParam(c *gin.Context) []string {
	raw := c.Query("genres")
	if raw == "" {
		return nil
	}

	var genres []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
