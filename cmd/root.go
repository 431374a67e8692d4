package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║   ███████╗ █████╗ ██╗     ███████╗███████╗   ║",
		"║   ██╔════╝██╔══██╗██║     ██╔════╝██╔════╝   ║",
		"║   ███████╗███████║██║     █████╗  ███████╗   ║",
		"║   ╚════██║██╔══██║██║     ██╔══╝  ╚════██║   ║",
		"║   ███████║██║  ██║███████╗███████╗███████║   ║",
		"║   ╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝   ║",
		"║                                              ║",
		"║        📊 Synthetic Sales Ledger 📊          ║",
		"╚══════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "salesgen",
	Short: "Generate consistent synthetic sales data",
	Long: `
salesgen synthesizes a referentially consistent fake sales ledger across
seven tables: categories, suppliers, sales representatives, customers,
products, sales and sale items.

Output targets:
- Direct inserts into a live database (PostgreSQL, MySQL, SQLite)
- CSV files plus a bulk-load SQL script for massive datasets

All foreign keys resolve by construction, monetary totals are derived
bottom-up from the sale items, and emails are unique within a run.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("salesgen CLI version %s\n", Version)
			os.Exit(0)
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./salesgen.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("salesgen.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
