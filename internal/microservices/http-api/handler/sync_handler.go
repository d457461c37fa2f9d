package handler

import (
	"net/http"

	"moviehub/internal/ingestion/tmdb"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService *tmdb.SyncService
}

func NewSyncHandler(syncService *tmdb.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// RegisterRoutes registers catalog sync routes
func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/genres", h.SyncGenres)
	router.POST("/movies", h.SyncMovies)
	router.POST("/all", h.SyncAll)
}

// SyncGenres pulls the genre list from TMDB
// POST /api/sync/genres
func (h *SyncHandler) SyncGenres(c *gin.Context) {
	result, err := h.syncService.SyncGenres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncMovies pulls popular movies from TMDB
// POST /api/sync/movies
func (h *SyncHandler) SyncMovies(c *gin.Context) {
	result, err := h.syncService.SyncMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncAll syncs genres first, then movies
// POST /api/sync/all
func (h *SyncHandler) SyncAll(c *gin.Context) {
	result, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
