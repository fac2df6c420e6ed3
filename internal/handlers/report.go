package handlers

import (
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rajatkhanna/invoice-api/internal/httpx"
	"github.com/rajatkhanna/invoice-api/internal/models"
	"github.com/rajatkhanna/invoice-api/internal/pdf"
	"github.com/rajatkhanna/invoice-api/internal/reporting"
)

type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// snapshot fetches both collections once so the aggregation runs over a
// single consistent view, never a live cursor.
func (h *ReportHandler) snapshot() ([]models.Invoice, []models.Client, error) {
	var invoices []models.Invoice
	if err := h.DB.Find(&invoices).Error; err != nil {
		return nil, nil, err
	}
	var clients []models.Client
	if err := h.DB.Find(&clients).Error; err != nil {
		return nil, nil, err
	}
	return invoices, clients, nil
}

// Summary: GET /reports/summary
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	invoices, clients, err := h.snapshot()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_generate_report", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    reporting.Summarize(invoices, clients),
	})
}

// PDF: GET /reports/pdf
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	invoices, clients, err := h.snapshot()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_generate_report", nil)
		return
	}
	data, err := pdf.Report(reporting.Summarize(invoices, clients))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	filename := fmt.Sprintf("invoice-report-%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}
