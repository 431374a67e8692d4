package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brunobrsr1/sales-project/internal/config"
	"github.com/brunobrsr1/sales-project/internal/database"
	"github.com/brunobrsr1/sales-project/internal/ledger"
	"github.com/brunobrsr1/sales-project/internal/sink"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Populate the database with synthetic sales data",
	Long: `Generate the full sales ledger straight into a live database.

Tables are filled in dependency order inside a single transaction; any
failure rolls the whole run back. With --clear the seven tables are
truncated first, otherwise new rows are appended and foreign keys are
drawn from the rows already present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyCountFlags(cmd, cfg)
		if cmd.Flags().Changed("clear") {
			cfg.Clear, _ = cmd.Flags().GetBool("clear")
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

		color.Cyan("🚀 Starting sales data generation...")
		color.White("📊 Will create: %d categories, %d suppliers, %d reps, %d customers, %d products, %d sales",
			cfg.Counts.Categories, cfg.Counts.Suppliers, cfg.Counts.SalesReps,
			cfg.Counts.Customers, cfg.Counts.Products, cfg.Counts.Sales)

		if cfg.Clear {
			if err := clearAllTables(ctx, adapter); err != nil {
				return fmt.Errorf("failed to clear tables: %w", err)
			}
		}

		syn := ledger.NewSynthesizer(cfg.LedgerCounts(), ledger.NewProvider(cfg.Seed),
			ledger.NewRand(cfg.Seed), sink.NewDB(adapter, cfg.Database.Provider), cfg.Batch)

		if !cfg.Clear {
			if err := preloadPools(ctx, adapter, syn); err != nil {
				return err
			}
		}

		noTx, _ := cmd.Flags().GetBool("no-transaction")
		if !noTx {
			if err := adapter.Begin(ctx); err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
			color.Cyan("🔒 Transaction started")
		}

		if err := syn.Run(ctx); err != nil {
			if !noTx {
				color.Yellow("🔄 Rolling back transaction...")
				if rbErr := adapter.Rollback(ctx); rbErr != nil {
					return fmt.Errorf("generation failed and rollback failed: %v (original: %w)", rbErr, err)
				}
			}
			return err
		}

		if !noTx {
			if err := adapter.Commit(ctx); err != nil {
				adapter.Rollback(ctx)
				return fmt.Errorf("failed to commit transaction: %w", err)
			}
			color.Cyan("🔓 Transaction committed")
		}

		color.Green("\n✅ Generation completed successfully!")
		return printStoreSummary(ctx, adapter)
	},
}

// preloadPools registers the rows already present in a live store, so new
// sales can reference existing customers and products, and advances every
// sequence counter past the highest stored identifier.
func preloadPools(ctx context.Context, adapter database.Adapter, syn *ledger.Synthesizer) error {
	queries := []struct {
		table, idCol    string
		activeCol       string
		priceCol        string
		registerEntries bool
	}{
		{"categories", "category_id", "", "", true},
		{"suppliers", "supplier_id", "is_active", "", true},
		{"sales_representatives", "rep_id", "is_active", "", true},
		{"customers", "customer_id", "is_active", "", true},
		{"products", "product_id", "is_active", "price", true},
		{"sales", "sale_id", "", "", false},
		{"sale_items", "sale_item_id", "", "", false},
	}

	for _, q := range queries {
		pool := syn.Pool(q.table)
		if q.registerEntries {
			cols := []string{q.idCol}
			if q.activeCol != "" {
				cols = append(cols, q.activeCol)
			}
			if q.priceCol != "" {
				cols = append(cols, q.priceCol)
			}
			rows, err := adapter.Query(ctx,
				fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), q.table))
			if err != nil {
				return fmt.Errorf("failed to read existing %s: %w", q.table, err)
			}
			for _, row := range rows {
				attrs := ledger.PoolAttrs{Active: true}
				if q.activeCol != "" {
					attrs.Active = database.AsBool(row[q.activeCol])
				}
				if q.priceCol != "" {
					attrs.Price = database.AsDecimal(row[q.priceCol])
				}
				pool.Register(database.AsInt64(row[q.idCol]), attrs)
			}
		}
		max, err := adapter.MaxID(ctx, q.table, q.idCol)
		if err != nil {
			return fmt.Errorf("failed to read max id of %s: %w", q.table, err)
		}
		pool.StartAfter(max)
	}
	return nil
}

func printStoreSummary(ctx context.Context, adapter database.Adapter) error {
	color.Cyan("\n📈 Summary:")
	for _, table := range ledger.TableOrder {
		count, err := adapter.TableCount(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		color.White("   %-22s %d", table, count)
	}
	revenue, err := adapter.PaidRevenue(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute revenue: %w", err)
	}
	color.Green("   💵 Paid revenue: $%.2f", revenue)
	return nil
}

// addCountFlags registers the per-run tuning flags shared by generate and csv.
func addCountFlags(cmd *cobra.Command) {
	cmd.Flags().Int("categories", 0, "Number of product categories (max 20)")
	cmd.Flags().Int("suppliers", 0, "Number of suppliers")
	cmd.Flags().Int("reps", 0, "Number of sales representatives")
	cmd.Flags().Int("customers", 0, "Number of customers")
	cmd.Flags().Int("products", 0, "Number of products")
	cmd.Flags().Int("sales", 0, "Number of sales")
	cmd.Flags().Int("max-items", 0, "Maximum items per sale")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible output (0 = time-based)")
	cmd.Flags().Int("batch", 0, "Rows per batched write")
}

func applyCountFlags(cmd *cobra.Command, cfg *config.Config) {
	flagInts := map[string]*int{
		"categories": &cfg.Counts.Categories,
		"suppliers":  &cfg.Counts.Suppliers,
		"reps":       &cfg.Counts.SalesReps,
		"customers":  &cfg.Counts.Customers,
		"products":   &cfg.Counts.Products,
		"sales":      &cfg.Counts.Sales,
		"max-items":  &cfg.Counts.MaxSaleItems,
		"batch":      &cfg.Batch,
	}
	for name, dst := range flagInts {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetInt(name)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addCountFlags(generateCmd)
	generateCmd.Flags().Bool("clear", false, "Truncate all tables before generating")
	generateCmd.Flags().Bool("no-transaction", false, "Run without a wrapping transaction")
}
