package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wordduel/internal/config"
	"wordduel/internal/logging"
	"wordduel/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordduelctl",
		Short: "Maintenance tools for the wordduel session store",
		Long: `Maintenance tools for the wordduel session store.

The store is selected by the same environment variables as the server:
  STORE_DRIVER     sql, redis or memory (default: sql)
  DATABASE_TYPE    sqlite, postgres or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./wordduel.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL
  REDIS_URL        Redis connection URL`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newExportCmd(), newImportCmd(), newPruneCmd(), newShowCmd())
	return cmd
}

// openBackend loads configuration and connects the configured session store
func openBackend(ctx context.Context) (*config.Config, *repository.Backend, error) {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	backend, err := repository.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("driver", cfg.StoreDriver).Msg("session store opened")
	return cfg, backend, nil
}
