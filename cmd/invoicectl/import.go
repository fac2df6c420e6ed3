package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rajatkhanna/invoice-api/internal/billing"
	"github.com/rajatkhanna/invoice-api/internal/config"
	"github.com/rajatkhanna/invoice-api/internal/db"
	"github.com/rajatkhanna/invoice-api/internal/logger"
	"github.com/rajatkhanna/invoice-api/internal/models"
	"github.com/rajatkhanna/invoice-api/internal/validation"
)

var importCmd = &cobra.Command{
	Use:   "import <dump.json>",
	Short: "Import clients and invoices from a JSON dump",
	Long: `Reads a JSON dump ({"clients": [...], "invoices": [...]}) and loads it
into the database. Duplicate client emails and invoice numbers are skipped.
Invoice totals and statuses are recomputed on the way in.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("import")

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read dump: %w", err)
	}
	var d dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	conn, err := db.ConnectAndMigrate(config.Load())
	if err != nil {
		return err
	}

	var existingEmails []string
	conn.Model(&models.Client{}).Pluck("email", &existingEmails)
	seen := make(map[string]bool, len(existingEmails))
	for _, e := range existingEmails {
		seen[e] = true
	}

	var clientsAdded, clientsSkipped int
	for i, c := range d.Clients {
		c.ID = 0
		c.Email = validation.NormalizeEmail(c.Email)
		if c.Name == "" || c.Email == "" {
			log.Warn().Int("row", i+1).Msg("client missing name or email, skipped")
			clientsSkipped++
			continue
		}
		if seen[c.Email] {
			clientsSkipped++
			continue
		}
		if err := conn.Create(&c).Error; err != nil {
			return fmt.Errorf("insert client %q: %w", c.Email, err)
		}
		seen[c.Email] = true
		clientsAdded++
	}

	var existingNumbers []string
	conn.Model(&models.Invoice{}).Pluck("invoice_number", &existingNumbers)
	numbers := make(map[string]bool, len(existingNumbers))
	for _, n := range existingNumbers {
		numbers[n] = true
	}

	var invoicesAdded, invoicesSkipped int
	for i, inv := range d.Invoices {
		inv.ID = 0
		if inv.InvoiceNumber == "" {
			inv.InvoiceNumber, err = models.GenerateInvoiceNumber(conn)
			if err != nil {
				return fmt.Errorf("assign invoice number: %w", err)
			}
		}
		if numbers[inv.InvoiceNumber] {
			log.Warn().Int("row", i+1).Str("number", inv.InvoiceNumber).Msg("duplicate invoice number, skipped")
			invoicesSkipped++
			continue
		}
		if inv.Currency == "" {
			inv.Currency = models.DefaultCurrency
		}
		inv.Total = billing.ComputeTotal(inv.Items, inv.GSTRate)
		inv.Status = billing.StatusFor(inv.AmountPaid, inv.Total)
		inv.ClientID = inv.For.ID
		if err := conn.Create(&inv).Error; err != nil {
			return fmt.Errorf("insert invoice %q: %w", inv.InvoiceNumber, err)
		}
		numbers[inv.InvoiceNumber] = true
		invoicesAdded++
	}

	log.Info().
		Int("clients_added", clientsAdded).
		Int("clients_skipped", clientsSkipped).
		Int("invoices_added", invoicesAdded).
		Int("invoices_skipped", invoicesSkipped).
		Msg("import complete")
	return nil
}
