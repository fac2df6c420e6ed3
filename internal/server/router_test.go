package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rajatkhanna/invoice-api/internal/logos"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Client{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	store, err := logos.NewStore(filepath.Join(t.TempDir(), "logos"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(conn, store)
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := do(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d", rec.Code)
	}

	rec = do(h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d; body: %s", rec.Code, rec.Body.String())
	}
}

func TestIndexBanner(t *testing.T) {
	h := newTestHandler(t)
	rec := do(h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	var banner struct {
		Status      string           `json:"status"`
		Collections map[string]int64 `json:"collections"`
		Endpoints   []string         `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &banner); err != nil {
		t.Fatalf("decode banner: %v", err)
	}
	if banner.Status != "healthy" {
		t.Errorf("status = %q", banner.Status)
	}
	if banner.Collections["clients"] != 0 || banner.Collections["invoices"] != 0 {
		t.Errorf("collections = %v, want zeros", banner.Collections)
	}
	if len(banner.Endpoints) == 0 {
		t.Error("endpoint list empty")
	}

	// the {$} pattern must not swallow unknown paths
	rec = do(h, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestLiteralRoutesWinOverWildcards(t *testing.T) {
	h := newTestHandler(t)

	rec := do(h, http.MethodPost, "/clients", `{"name":"Acme","email":"a@acme.test"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d; body: %s", rec.Code, rec.Body.String())
	}

	// /clients/export must route to the export handler, not /clients/{id}
	rec = do(h, http.MethodGet, "/clients/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/clients/export status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if !resp.Success || resp.Count != 1 {
		t.Errorf("export = %+v", resp)
	}

	rec = do(h, http.MethodGet, "/clients/1", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/clients/1 status = %d", rec.Code)
	}
}

func TestEndToEndInvoiceLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := do(h, http.MethodPost, "/invoices", `{
		"date": "2025-07-15",
		"items": [{"description": "Consulting", "quantity": 2, "unit_price": 100, "tax": 10}]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var inv models.Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if inv.Total != 256 || inv.InvoiceNumber != "INV-0001" {
		t.Fatalf("created invoice = %+v", inv)
	}

	rec = do(h, http.MethodPost, fmt.Sprintf("/invoices/%d/pay", inv.ID), `{"amount": 256}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("pay status = %d; body: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode paid invoice: %v", err)
	}
	if inv.Status != models.StatusPaid {
		t.Errorf("status after full payment = %q, want paid", inv.Status)
	}

	rec = do(h, http.MethodGet, "/reports/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"collection_rate":100`) {
		t.Errorf("summary body: %s", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rec := do(h, http.MethodPatch, "/clients", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH /clients status = %d, want 405", rec.Code)
	}
}
