package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brunobrsr1/sales-project/internal/config"
	"github.com/brunobrsr1/sales-project/internal/database"
	"github.com/brunobrsr1/sales-project/internal/ledger"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all generated data",
	Long: `Truncate the seven sales tables in reverse dependency order with
foreign key checks suspended.

⚠️  WARNING: This permanently deletes all rows in those tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm("This will delete all data in the sales tables. Continue? [y/N] ") {
			color.Yellow("Aborted")
			return nil
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

		return clearAllTables(ctx, adapter)
	},
}

// clearAllTables truncates in reverse dependency order so child rows go
// first, with FK checks off around the batch the way the bulk loads do it.
func clearAllTables(ctx context.Context, adapter database.Adapter) error {
	color.Yellow("🧹 Clearing existing data...")

	if err := adapter.SetForeignKeyChecks(ctx, false); err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}
	for i := len(ledger.TableOrder) - 1; i >= 0; i-- {
		table := ledger.TableOrder[i]
		if err := adapter.Truncate(ctx, table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		color.White("   Cleared %s", table)
	}
	if err := adapter.SetForeignKeyChecks(ctx, true); err != nil {
		return fmt.Errorf("failed to re-enable foreign key checks: %w", err)
	}

	color.Green("✅ Data cleared successfully!")
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
