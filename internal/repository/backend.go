package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"wordduel/internal/config"
	"wordduel/internal/database"
)

// Backend is an opened session store and the connection behind it
type Backend struct {
	Store SessionStore
	DB    *database.DB // set for the sql driver
	redis *redis.Client
}

// OpenBackend connects the session store selected by cfg.StoreDriver. The sql
// driver also runs pending migrations.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case "sql", "":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize database")
		}
		if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to run migrations")
		}
		log.Info().Str("database", cfg.DatabaseType).Msg("sql session store ready")
		return &Backend{Store: NewSQLSessionRepository(db), DB: db}, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, errors.Wrap(err, "failed to connect to redis")
		}
		log.Info().Str("addr", opts.Addr).Msg("redis session store ready")
		return &Backend{Store: NewRedisSessionRepository(client), redis: client}, nil

	case "memory":
		log.Warn().Msg("using in-memory session store, games are lost on restart")
		return &Backend{Store: NewMemorySessionRepository()}, nil

	default:
		return nil, errors.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

// Close releases the connection behind the store
func (b *Backend) Close() error {
	switch {
	case b.DB != nil:
		return b.DB.Close()
	case b.redis != nil:
		return b.redis.Close()
	default:
		return nil
	}
}
