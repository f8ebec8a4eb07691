package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wordduel/internal/service"
)

func newPruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete open sessions nobody joined",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}

			ctx := cmd.Context()
			cfg, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			games := service.NewGameService(backend.Store, cfg.MaxRetries, log.Logger)
			pruned, err := games.PruneOpen(ctx, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d open sessions\n", pruned)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Only prune sessions created longer ago than this")
	return cmd
}
