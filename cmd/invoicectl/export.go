package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rajatkhanna/invoice-api/internal/config"
	"github.com/rajatkhanna/invoice-api/internal/db"
	"github.com/rajatkhanna/invoice-api/internal/logger"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all clients and invoices as a JSON dump",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	conn, err := db.ConnectAndMigrate(config.Load())
	if err != nil {
		return err
	}

	d := dump{ExportedAt: time.Now().UTC()}
	if err := conn.Order("created_at asc").Find(&d.Clients).Error; err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	if err := conn.Order("created_at asc").Find(&d.Invoices).Error; err != nil {
		return fmt.Errorf("load invoices: %w", err)
	}

	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	out = append(out, '\n')

	if exportOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(exportOut, out, 0o644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	log.Info().Str("file", exportOut).Int("clients", len(d.Clients)).Int("invoices", len(d.Invoices)).Msg("export complete")
	return nil
}
