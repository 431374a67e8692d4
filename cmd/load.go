package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brunobrsr1/sales-project/internal/config"
	"github.com/brunobrsr1/sales-project/internal/ledger"
	"github.com/brunobrsr1/sales-project/internal/loader"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load generated CSV files into PostgreSQL",
	Long: `Copy the CSV files produced by 'salesgen csv' into a PostgreSQL
database using the COPY protocol, in dependency order, inside a single
transaction. The MySQL equivalent is the generated import_data.sql script.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("dir") {
			cfg.OutputPath, _ = cmd.Flags().GetString("dir")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cfg.Database.Provider != "postgresql" && cfg.Database.Provider != "postgres" {
			return fmt.Errorf("load requires a PostgreSQL database, configured provider is %s (use import_data.sql for MySQL)",
				cfg.Database.Provider)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		l, err := loader.Open(ctx, dbURL)
		if err != nil {
			return err
		}
		defer l.Close()

		color.Cyan("📥 Loading CSV files from %s/ ...", cfg.OutputPath)
		loaded, err := l.Load(ctx, cfg.OutputPath)
		if err != nil {
			return err
		}

		color.Green("✅ Load completed successfully!")
		for _, table := range ledger.TableOrder {
			color.White("   %-22s %d rows", table, loaded[table])
		}
		revenue, err := l.PaidRevenue(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute revenue: %w", err)
		}
		color.Green("   💵 Paid revenue: $%.2f", revenue)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().String("dir", "", "Directory holding the CSV files (default data)")
}
