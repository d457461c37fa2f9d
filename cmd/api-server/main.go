package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/ingestion/tmdb"
	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"
)

func main() {
	// 1️⃣ Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	setupLogger(cfg)

	// 2️⃣ Connect to the database
	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional; a nil client disables response caching
	rdb := database.ConnectRedis(cfg.RedisURL, cfg.RedisPassword)

	// 3️⃣ Wire repositories and services
	txRunner := repository.NewTxRunner(db)
	movieRepo := repository.NewMovieRepository(db)
	ratingRepo := repository.NewRatingRepository()
	userRepo := repository.NewUserRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	genreRepo := repository.NewGenreRepository(db)

	movieService := service.NewMovieService(movieRepo)
	ratingService := service.NewRatingService(txRunner, movieRepo, ratingRepo)
	authService := service.NewAuthService(userRepo, cfg)
	watchlistService := service.NewWatchlistService(watchlistRepo, movieRepo)

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey)
	syncService := tmdb.NewSyncService(tmdbClient, movieRepo, genreRepo, cfg.TMDBMaxPages, slog.Default())

	movieHandler := handler.NewMovieHandler(movieService, ratingService)
	authHandler := handler.NewAuthHandler(authService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	syncHandler := handler.NewSyncHandler(syncService)

	// 4️⃣ Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	windowLimiter := middleware.NewFixedWindowLimiter(cfg.FixedWindowSize, cfg.FixedWindowMax)
	r.Use(windowLimiter.Middleware())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected ✅",
		})
	})

	api := r.Group("/api")

	users := api.Group("/users")
	authHandler.RegisterRoutes(users)

	bucketLimiter := middleware.NewTokenBucketLimiter(cfg.TokenBucketCapacity, cfg.TokenBucketRefill)

	movies := api.Group("/movies")
	movies.Use(bucketLimiter.Middleware())
	movies.Use(middleware.AuthMiddleware(authService))
	// cache runs after auth so unauthenticated requests never hit or fill it
	movies.Use(middleware.CacheMiddleware(rdb, cfg.CacheTTL))
	movieHandler.RegisterRoutes(movies)

	watchlist := api.Group("/watchlist")
	watchlist.Use(middleware.AuthMiddleware(authService))
	watchlistHandler.RegisterRoutes(watchlist)

	sync := api.Group("/sync")
	sync.Use(middleware.AuthMiddleware(authService))
	syncHandler.RegisterRoutes(sync)

	httpServer := fmt.Sprintf(":%d", cfg.HTTPPort)
	slog.Info("🚀 Server running", "addr", httpServer)
	if err := r.Run(httpServer); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
