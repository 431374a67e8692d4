package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/brunobrsr1/sales-project/internal/ledger"
)

type Config struct {
	Version    string   `json:"version" mapstructure:"version"`
	OutputPath string   `json:"output_path" mapstructure:"output_path"`
	ScriptPath string   `json:"script_path" mapstructure:"script_path"`
	Seed       int64    `json:"seed" mapstructure:"seed"`
	Batch      int      `json:"batch" mapstructure:"batch"`
	Clear      bool     `json:"clear" mapstructure:"clear"`
	Database   Database `json:"database" mapstructure:"database"`
	Counts     Counts   `json:"counts" mapstructure:"counts"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Counts are the per-run record counts. Sale items are derived, so they are
// bounded per sale rather than counted directly.
type Counts struct {
	Categories   int `json:"categories" mapstructure:"categories"`
	Suppliers    int `json:"suppliers" mapstructure:"suppliers"`
	SalesReps    int `json:"sales_reps" mapstructure:"sales_reps"`
	Customers    int `json:"customers" mapstructure:"customers"`
	Products     int `json:"products" mapstructure:"products"`
	Sales        int `json:"sales" mapstructure:"sales"`
	MaxSaleItems int `json:"max_sale_items" mapstructure:"max_sale_items"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "data"
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = "import_data.sql"
	}
	if cfg.Batch == 0 {
		cfg.Batch = 100
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "mysql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Counts.Categories == 0 {
		cfg.Counts.Categories = 20
	}
	if cfg.Counts.Suppliers == 0 {
		cfg.Counts.Suppliers = 50
	}
	if cfg.Counts.SalesReps == 0 {
		cfg.Counts.SalesReps = 25
	}
	if cfg.Counts.Customers == 0 {
		cfg.Counts.Customers = 1000
	}
	if cfg.Counts.Products == 0 {
		cfg.Counts.Products = 500
	}
	if cfg.Counts.Sales == 0 {
		cfg.Counts.Sales = 2000
	}
	if cfg.Counts.MaxSaleItems == 0 {
		cfg.Counts.MaxSaleItems = 5
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v",
			c.Database.Provider, supportedProviders)
	}

	if c.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if c.Batch < 0 {
		return fmt.Errorf("batch cannot be negative")
	}
	for name, n := range map[string]int{
		"categories": c.Counts.Categories,
		"suppliers":  c.Counts.Suppliers,
		"sales_reps": c.Counts.SalesReps,
		"customers":  c.Counts.Customers,
		"products":   c.Counts.Products,
		"sales":      c.Counts.Sales,
	} {
		if n < 0 {
			return fmt.Errorf("count for %s cannot be negative", name)
		}
	}
	return nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// LedgerCounts converts the config counts into the pipeline's form.
func (c *Config) LedgerCounts() ledger.Counts {
	return ledger.Counts{
		Categories:   c.Counts.Categories,
		Suppliers:    c.Counts.Suppliers,
		SalesReps:    c.Counts.SalesReps,
		Customers:    c.Counts.Customers,
		Products:     c.Counts.Products,
		Sales:        c.Counts.Sales,
		MaxSaleItems: c.Counts.MaxSaleItems,
	}
}
