package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/ingestion/tmdb"
	"moviehub/internal/microservices/http-api/repository"
)

func main() {
	log.Println("===========================================")
	log.Println("   TMDB Sync Service Starting...")
	log.Println("===========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Fatal] could not load config: %v", err)
	}

	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Fatal] Failed to connect to database: %v", err)
	}

	log.Println("[Database] ✅ Connected successfully")
	log.Println("[Config] Loaded configuration:")
	log.Printf("  - API URL: %s", cfg.TMDBAPIURL)
	log.Printf("  - API Key: %s", maskAPIKey(cfg.TMDBAPIKey))
	log.Printf("  - Max Pages: %d", cfg.TMDBMaxPages)

	client := tmdb.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey)
	syncService := tmdb.NewSyncService(
		client,
		repository.NewMovieRepository(db),
		repository.NewGenreRepository(db),
		cfg.TMDBMaxPages,
		slog.Default(),
	)
	log.Println("[SyncService] ✅ Service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n[Shutdown] Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	result, err := syncService.SyncAll(ctx)
	if err != nil {
		log.Fatalf("[Sync] Error: %v", err)
	}

	log.Printf("[Sync] ✅ %s", result.Message)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
