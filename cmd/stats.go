package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunobrsr1/sales-project/internal/config"
	"github.com/brunobrsr1/sales-project/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-table row counts and paid revenue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter := database.NewAdapter(cfg.Database.Provider)
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()
		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach database: %w", err)
		}

		return printStoreSummary(ctx, adapter)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
