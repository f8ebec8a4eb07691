package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wordduel/internal/service"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all sessions to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			// Generate default filename if not provided
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return errors.Wrap(err, "failed to create output directory")
				}
			}

			backup := service.NewBackupService(backend.Store, cfg.StoreDriver, backend.DB)
			if err := backup.Export(ctx, output); err != nil {
				return err
			}

			info, err := os.Stat(output)
			if err == nil {
				log.Info().Str("file", output).Int64("bytes", info.Size()).Msg("export complete")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		input    string
		clearAll bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import sessions from a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(input); err != nil {
				return errors.Wrap(err, "input file")
			}
			if clearAll && !yes && !confirm(cmd, "WARNING: This will delete all existing sessions. Type 'yes' to confirm: ") {
				log.Info().Msg("import cancelled")
				return nil
			}

			ctx := cmd.Context()
			cfg, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			backup := service.NewBackupService(backend.Store, cfg.StoreDriver, backend.DB)
			stats, err := backup.Import(ctx, input, clearAll)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, rejected %d, cleared %d\n",
				stats.Imported, stats.Skipped, stats.Rejected, stats.Cleared)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path (required)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Clear existing sessions before import (WARNING: destructive)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}
