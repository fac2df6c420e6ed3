package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/rajatkhanna/invoice-api/internal/billing"
	"github.com/rajatkhanna/invoice-api/internal/httpx"
	"github.com/rajatkhanna/invoice-api/internal/logos"
	"github.com/rajatkhanna/invoice-api/internal/models"
	"github.com/rajatkhanna/invoice-api/internal/pdf"
	"github.com/rajatkhanna/invoice-api/internal/render"
)

type InvoiceHandler struct {
	DB    *gorm.DB
	Logos *logos.Store
}

func NewInvoiceHandler(db *gorm.DB, store *logos.Store) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Logos: store}
}

// invoiceReq is the create/update payload. Optional numeric fields are
// pointers so "absent" and "zero" stay distinguishable; defaults are resolved
// here, once, at the parse boundary.
type invoiceReq struct {
	Date       string             `json:"date"`
	DueDate    string             `json:"due_date"`
	Items      []models.LineItem  `json:"items"`
	Currency   string             `json:"currency"`
	GSTRate    *models.FlexNumber `json:"gst_rate"`
	From       models.Party       `json:"from"`
	For        models.ClientRef   `json:"for"`
	AmountPaid *models.FlexNumber `json:"amount_paid"`
	Status     string             `json:"status"`
}

// gstRate resolves the requested GST rate against a fallback. The bool is
// false when a rate was sent but cannot be coerced to a number.
func (req *invoiceReq) gstRate(fallback float64) (float64, bool) {
	if req.GSTRate == nil {
		return fallback, true
	}
	if req.GSTRate.Invalid {
		return 0, false
	}
	return req.GSTRate.Value, true
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice
	if err := h.DB.Order("created_at desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if len(req.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "must_be_a_non_empty_list"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	gstRate, ok := req.gstRate(models.DefaultGSTRate)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"gst_rate": "must_be_numeric"})
		return
	}
	number, err := models.GenerateInvoiceNumber(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	inv := models.Invoice{
		InvoiceNumber: number,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Items:         req.Items,
		Currency:      currency,
		GSTRate:       gstRate,
		Total:         billing.ComputeTotal(req.Items, gstRate),
		Status:        models.StatusUnpaid,
		AmountPaid:    0,
		From:          req.From,
		For:           req.For,
		ClientID:      req.For.ID,
	}
	if err := h.DB.Create(&inv).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update: PUT /invoices/{id}
// Full update: the document is replaced except for the invoice number,
// creation time, and payment state; the total is always recomputed. Payment
// fields change only when the payload carries them explicitly.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	var req invoiceReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if len(req.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "must_be_a_non_empty_list"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = inv.Currency
	}
	gstRate, okRate := req.gstRate(inv.GSTRate)
	if !okRate {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"gst_rate": "must_be_numeric"})
		return
	}
	inv.Date = req.Date
	inv.DueDate = req.DueDate
	inv.Items = req.Items
	inv.Currency = currency
	inv.GSTRate = gstRate
	inv.Total = billing.ComputeTotal(req.Items, gstRate)
	inv.From = req.From
	inv.For = req.For
	inv.ClientID = req.For.ID
	if req.AmountPaid != nil && !req.AmountPaid.Invalid {
		inv.AmountPaid = req.AmountPaid.Value
	}
	if req.Status != "" {
		inv.Status = models.PaymentStatus(req.Status)
	}
	if err := h.DB.Save(&inv).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Delete(&models.Invoice{}, id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Invoice %d deleted successfully", id),
	})
}

type payReq struct {
	Amount models.FlexNumber `json:"amount"`
}

// Pay: POST /invoices/{id}/pay
// Payments are strictly additive; a non-positive or non-numeric amount is
// rejected without touching the invoice.
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	var req payReq
	if err := httpx.Decode(r, &req); err != nil || req.Amount.Invalid {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payment_amount", nil)
		return
	}
	newPaid, status, err := billing.ApplyPayment(inv.AmountPaid, inv.Total, req.Amount.Value)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "payment_must_be_positive", nil)
		return
	}
	updates := map[string]any{"amount_paid": newPaid, "status": status}
	if err := h.DB.Model(&inv).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	inv.AmountPaid = newPaid
	inv.Status = status
	httpx.JSON(w, http.StatusOK, inv)
}

// Document: GET /invoices/{id}/pdf
// Renders the invoice as a PDF, or as the HTML document with ?format=html.
func (h *InvoiceHandler) Document(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	var client *models.Client
	if inv.For.ID != 0 {
		var c models.Client
		if err := h.DB.First(&c, inv.For.ID).Error; err == nil {
			client = &c
		}
	}

	if r.URL.Query().Get("format") == "html" {
		data, err := render.InvoiceHTML(inv, client)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "html_generation_failed", nil)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+inv.InvoiceNumber+".html"))
		_, _ = w.Write(data)
		return
	}

	data, err := pdf.Invoice(inv, client, h.logoPath(inv))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+inv.InvoiceNumber+".pdf"))
	_, _ = w.Write(data)
}

// logoPath resolves the invoice's logo reference to an on-disk file, or ""
// when there is no logo, the file is missing, or no store is configured.
func (h *InvoiceHandler) logoPath(inv models.Invoice) string {
	if h.Logos == nil || inv.From.Logo == nil {
		return ""
	}
	filename := inv.From.Logo.Filename
	if filename == "" {
		url := inv.From.Logo.URL
		for i := len(url) - 1; i >= 0; i-- {
			if url[i] == '/' {
				filename = url[i+1:]
				break
			}
		}
	}
	if filename == "" {
		return ""
	}
	p, err := h.Logos.Path(filename)
	if err != nil {
		return ""
	}
	return p
}

func (h *InvoiceHandler) load(w http.ResponseWriter, r *http.Request) (models.Invoice, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return models.Invoice{}, false
	}
	var inv models.Invoice
	if err := h.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		}
		return models.Invoice{}, false
	}
	return inv, true
}
