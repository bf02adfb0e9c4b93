package main

import (
	"auction-marketplace/utils"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "auction-marketplace",
	Short: "Marketplace auction service",
	Long: `Marketplace auction service.

Serves the bulk auction management endpoint together with the live,
featured and watchlist auction queries.

Configuration is read from --config (YAML) and MARKETPLACE_* environment
variables, e.g. MARKETPLACE_STORE_DRIVER=sqlite.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Fatal("command failed", map[string]any{"error": err.Error()})
	}
}
