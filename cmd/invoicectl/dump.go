package main

import (
	"time"

	"github.com/rajatkhanna/invoice-api/internal/models"
)

// dump is the interchange shape shared by import and export.
type dump struct {
	Clients    []models.Client  `json:"clients"`
	Invoices   []models.Invoice `json:"invoices"`
	ExportedAt time.Time        `json:"exported_at,omitempty"`
}
