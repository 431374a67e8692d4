package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brunobrsr1/sales-project/internal/config"
	"github.com/brunobrsr1/sales-project/internal/ledger"
	"github.com/brunobrsr1/sales-project/internal/script"
	"github.com/brunobrsr1/sales-project/internal/sink"
)

type manifest struct {
	RunID       string          `yaml:"run_id"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Seed        int64           `yaml:"seed"`
	Script      string          `yaml:"script"`
	Tables      []manifestEntry `yaml:"tables"`
}

type manifestEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Rows int    `yaml:"rows"`
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Generate CSV files and a bulk-load SQL script",
	Long: `Write the full sales ledger as one CSV file per table, plus an
import_data.sql script that bulk-loads them into MySQL in dependency order.
This path is much faster than direct inserts for large datasets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyCountFlags(cmd, cfg)
		if cmd.Flags().Changed("out") {
			cfg.OutputPath, _ = cmd.Flags().GetString("out")
		}
		if cmd.Flags().Changed("script") {
			cfg.ScriptPath, _ = cmd.Flags().GetString("script")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		color.Cyan("🚀 Generating CSV files in %s/ ...", cfg.OutputPath)

		out, err := sink.NewCSV(cfg.OutputPath)
		if err != nil {
			return err
		}

		syn := ledger.NewSynthesizer(cfg.LedgerCounts(), ledger.NewProvider(cfg.Seed),
			ledger.NewRand(cfg.Seed), out, cfg.Batch)

		runErr := syn.Run(context.Background())
		if closeErr := out.Close(); runErr == nil {
			runErr = closeErr
		}
		if runErr != nil {
			return runErr
		}

		if err := script.Write(cfg.ScriptPath, cfg.OutputPath); err != nil {
			return fmt.Errorf("failed to write import script: %w", err)
		}

		if err := writeManifest(cfg, syn.Written()); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}

		color.Green("✅ CSV files generated successfully!")
		for _, table := range ledger.TableOrder {
			color.White("   %-22s %d records", table+".csv", syn.Written()[table])
		}
		color.White("   import script: %s", cfg.ScriptPath)
		return nil
	},
}

func writeManifest(cfg *config.Config, written map[string]int) error {
	m := manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Seed:        cfg.Seed,
		Script:      cfg.ScriptPath,
	}
	for _, table := range ledger.TableOrder {
		m.Tables = append(m.Tables, manifestEntry{
			Name: table,
			File: table + ".csv",
			Rows: written[table],
		})
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.OutputPath, "manifest.yaml"), data, 0644)
}

func init() {
	rootCmd.AddCommand(csvCmd)
	addCountFlags(csvCmd)
	csvCmd.Flags().String("out", "", "Output directory for CSV files (default data)")
	csvCmd.Flags().String("script", "", "Path of the generated import script (default import_data.sql)")
}
