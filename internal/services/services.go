package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/othengine/internal/cache"
	"github.com/lk16/othengine/internal/config"
	"github.com/lk16/othengine/internal/repository"
)

// Services contains the connections to the external services.
type Services struct {
	Cache cache.Cache

	// Games is nil when no database is configured.
	Games *repository.GameRepository

	db    *sqlx.DB
	redis *cache.Redis
}

// InitServices connects to Redis and the database when they are configured. Without Redis an
// in-memory cache is used.
func InitServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, cache.DefaultTTL)
		if err != nil {
			return nil, err
		}
		services.redis = redisCache
		services.Cache = redisCache
	} else {
		services.Cache = cache.NewMemory()
	}

	if cfg.DatabaseURL != "" {
		db, err := repository.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			services.Close() //nolint:errcheck
			return nil, err
		}
		services.db = db

		games := repository.NewGameRepository(db)
		if err = games.Migrate(ctx); err != nil {
			services.Close() //nolint:errcheck
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		services.Games = games
	}

	slog.Debug("Services initialized",
		"redis", services.redis != nil,
		"database", services.db != nil,
		"database_driver", cfg.DatabaseDriver,
	)

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() error {
	var errs []error

	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}

	if s.db != nil {
		errs = append(errs, s.db.Close())
	}

	return errors.Join(errs...)
}
