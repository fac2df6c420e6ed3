package server

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rajatkhanna/invoice-api/internal/handlers"
	"github.com/rajatkhanna/invoice-api/internal/httpx"
	"github.com/rajatkhanna/invoice-api/internal/logos"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(conn *gorm.DB, store *logos.Store) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB probe; detailed errors stay out of the body.
		if err := conn.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /{$}", index(conn))

	ch := handlers.NewClientHandler(conn)
	mux.HandleFunc("GET /clients", ch.List)
	mux.HandleFunc("POST /clients", ch.Create)
	mux.HandleFunc("GET /clients/export", ch.Export)
	mux.HandleFunc("POST /clients/bulk", ch.Bulk)
	mux.HandleFunc("GET /clients/{id}", ch.Get)
	mux.HandleFunc("PUT /clients/{id}", ch.Update)
	mux.HandleFunc("DELETE /clients/{id}", ch.Delete)

	ih := handlers.NewInvoiceHandler(conn, store)
	mux.HandleFunc("GET /invoices", ih.List)
	mux.HandleFunc("POST /invoices", ih.Create)
	mux.HandleFunc("GET /invoices/{id}", ih.Get)
	mux.HandleFunc("PUT /invoices/{id}", ih.Update)
	mux.HandleFunc("DELETE /invoices/{id}", ih.Delete)
	mux.HandleFunc("POST /invoices/{id}/pay", ih.Pay)
	mux.HandleFunc("GET /invoices/{id}/pdf", ih.Document)

	lh := handlers.NewLogoHandler(store)
	mux.HandleFunc("POST /logos/upload", lh.Upload)
	mux.HandleFunc("GET /logos", lh.List)
	mux.HandleFunc("GET /logos/{filename}", lh.Serve)
	mux.HandleFunc("DELETE /logos/{filename}", lh.Delete)

	rh := handlers.NewReportHandler(conn)
	mux.HandleFunc("GET /reports/summary", rh.Summary)
	mux.HandleFunc("GET /reports/pdf", rh.PDF)

	return withRecover(withLogging(mux))
}

// index serves the API banner with collection counts and the endpoint list.
func index(conn *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clientCount, invoiceCount int64
		conn.Model(&models.Client{}).Count(&clientCount)
		conn.Model(&models.Invoice{}).Count(&invoiceCount)
		httpx.JSON(w, http.StatusOK, map[string]any{
			"message":   "Invoice API running",
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"collections": map[string]int64{
				"clients":  clientCount,
				"invoices": invoiceCount,
			},
			"endpoints": []string{
				"GET /clients - List clients",
				"POST /clients - Create client",
				"GET /clients/{id} - Get client",
				"PUT /clients/{id} - Update client",
				"DELETE /clients/{id} - Delete client",
				"POST /clients/bulk - Bulk import clients",
				"GET /clients/export - Export clients",
				"GET /invoices - List invoices",
				"POST /invoices - Create invoice",
				"GET /invoices/{id} - Get invoice",
				"PUT /invoices/{id} - Update invoice",
				"DELETE /invoices/{id} - Delete invoice",
				"POST /invoices/{id}/pay - Record payment",
				"GET /invoices/{id}/pdf - Download invoice PDF (or ?format=html)",
				"POST /logos/upload - Upload company logo",
				"GET /logos - List logos",
				"GET /logos/{filename} - Serve logo",
				"DELETE /logos/{filename} - Delete logo",
				"GET /reports/summary - Financial summary",
				"GET /reports/pdf - Download report PDF",
				"GET /health - Health check",
			},
		})
	}
}
