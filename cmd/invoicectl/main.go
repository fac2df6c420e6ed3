package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rajatkhanna/invoice-api/internal/config"
	"github.com/rajatkhanna/invoice-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Data tooling for the invoice API",
	Long:  "invoicectl imports and exports full database dumps (clients and invoices) as JSON.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg := config.Load()
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
