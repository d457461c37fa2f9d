package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moviehub/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the postgres connection and runs the schema migration.
// TranslateError must stay on: the rating path relies on
// gorm.ErrDuplicatedKey to resolve concurrent inserts.
func ConnectDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database connection established")
	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Genre{},
		&models.Movie{},
		&models.User{},
		&models.Rating{},
		&models.Watchlist{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ConnectRedis returns a ready client, or nil when Redis is unreachable so
// callers can run without the cache layer.
func ConnectRedis(redisURL, password string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid redis URL, caching disabled", "error", err)
		return nil
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, caching disabled", "error", err)
		return nil
	}

	return rdb
}
