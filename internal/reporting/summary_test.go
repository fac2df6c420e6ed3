package reporting

import (
	"fmt"
	"testing"

	"github.com/rajatkhanna/invoice-api/internal/models"
)

func inv(clientID uint, total, paid float64, status models.PaymentStatus, date string) models.Invoice {
	return models.Invoice{
		Total:      total,
		AmountPaid: paid,
		Status:     status,
		Date:       date,
		For:        models.ClientRef{ID: clientID},
	}
}

func TestSummarize(t *testing.T) {
	invoices := []models.Invoice{
		inv(1, 256, 256, models.StatusPaid, "2025-07-15"),
		inv(2, 100, 0, models.StatusUnpaid, "2025-08-01"),
	}
	clients := []models.Client{
		{ID: 1, Name: "Acme Corp", Email: "billing@acme.test"},
		{ID: 2, Name: "Beta LLC", Email: "ap@beta.test"},
	}

	s := Summarize(invoices, clients)

	if s.TotalInvoiced != 356 {
		t.Errorf("TotalInvoiced = %v, want 356", s.TotalInvoiced)
	}
	if s.TotalPaid != 256 {
		t.Errorf("TotalPaid = %v, want 256", s.TotalPaid)
	}
	if s.TotalOutstanding != 100 {
		t.Errorf("TotalOutstanding = %v, want 100", s.TotalOutstanding)
	}
	if s.InvoiceCount != 2 || s.ClientCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", s.InvoiceCount, s.ClientCount)
	}
	if s.AverageInvoice != 178 {
		t.Errorf("AverageInvoice = %v, want 178", s.AverageInvoice)
	}
	if s.CollectionRate != 71.91 {
		t.Errorf("CollectionRate = %v, want 71.91", s.CollectionRate)
	}
	if s.StatusBreakdown.Paid != 1 || s.StatusBreakdown.Partial != 0 || s.StatusBreakdown.Unpaid != 1 {
		t.Errorf("StatusBreakdown = %+v, want 1 paid, 0 partial, 1 unpaid", s.StatusBreakdown)
	}

	if len(s.TopClients) != 2 {
		t.Fatalf("TopClients len = %d, want 2", len(s.TopClients))
	}
	if s.TopClients[0].Name != "Acme Corp" || s.TopClients[0].Revenue != 256 {
		t.Errorf("TopClients[0] = %+v, want Acme Corp/256", s.TopClients[0])
	}
	if s.TopClients[1].Name != "Beta LLC" || s.TopClients[1].Revenue != 100 {
		t.Errorf("TopClients[1] = %+v, want Beta LLC/100", s.TopClients[1])
	}

	if len(s.MonthlyData) != 2 {
		t.Fatalf("MonthlyData len = %d, want 2", len(s.MonthlyData))
	}
	if s.MonthlyData[0].Month != "July 2025" || s.MonthlyData[0].Amount != 256 {
		t.Errorf("MonthlyData[0] = %+v, want July 2025/256", s.MonthlyData[0])
	}
	if s.MonthlyData[1].Month != "August 2025" || s.MonthlyData[1].Amount != 100 {
		t.Errorf("MonthlyData[1] = %+v, want August 2025/100", s.MonthlyData[1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalInvoiced != 0 || s.TotalPaid != 0 || s.TotalOutstanding != 0 {
		t.Errorf("totals not zero: %+v", s)
	}
	if s.AverageInvoice != 0 || s.CollectionRate != 0 {
		t.Errorf("derived rates not zero: avg=%v rate=%v", s.AverageInvoice, s.CollectionRate)
	}
	if s.TopClients == nil || len(s.TopClients) != 0 {
		t.Errorf("TopClients = %v, want empty slice", s.TopClients)
	}
	if s.MonthlyData == nil || len(s.MonthlyData) != 0 {
		t.Errorf("MonthlyData = %v, want empty slice", s.MonthlyData)
	}
}

func TestSummarizeUnknownStatusCountsMoney(t *testing.T) {
	invoices := []models.Invoice{
		{Total: 50, AmountPaid: 10, Status: "overdue"},
	}
	s := Summarize(invoices, nil)
	if s.TotalInvoiced != 50 || s.TotalPaid != 10 {
		t.Errorf("money totals = %v/%v, want 50/10", s.TotalInvoiced, s.TotalPaid)
	}
	if s.StatusBreakdown != (StatusBreakdown{}) {
		t.Errorf("unknown status leaked into breakdown: %+v", s.StatusBreakdown)
	}
	if s.InvoiceCount != 1 {
		t.Errorf("InvoiceCount = %d, want 1", s.InvoiceCount)
	}
}

func TestTopClientsCapAndOrder(t *testing.T) {
	var invoices []models.Invoice
	var clients []models.Client
	for i := uint(1); i <= 7; i++ {
		clients = append(clients, models.Client{ID: i, Name: fmt.Sprintf("Client %d", i)})
		invoices = append(invoices, inv(i, float64(i*100), 0, models.StatusUnpaid, ""))
	}

	s := Summarize(invoices, clients)
	if len(s.TopClients) != 5 {
		t.Fatalf("TopClients len = %d, want 5", len(s.TopClients))
	}
	if s.TopClients[0].Revenue != 700 || s.TopClients[4].Revenue != 300 {
		t.Errorf("ranking off: first=%v last=%v, want 700/300", s.TopClients[0].Revenue, s.TopClients[4].Revenue)
	}
}

func TestTopClientsTiesKeepEncounterOrder(t *testing.T) {
	invoices := []models.Invoice{
		inv(2, 100, 0, models.StatusUnpaid, ""),
		inv(1, 100, 0, models.StatusUnpaid, ""),
	}
	clients := []models.Client{
		{ID: 1, Name: "First ID"},
		{ID: 2, Name: "Seen First"},
	}
	s := Summarize(invoices, clients)
	if len(s.TopClients) != 2 {
		t.Fatalf("TopClients len = %d, want 2", len(s.TopClients))
	}
	if s.TopClients[0].Name != "Seen First" {
		t.Errorf("tie broke encounter order: got %q first", s.TopClients[0].Name)
	}
}

func TestTopClientsSkipsUnknownAndNonPositive(t *testing.T) {
	invoices := []models.Invoice{
		inv(1, 100, 0, models.StatusUnpaid, ""),
		inv(99, 500, 0, models.StatusUnpaid, ""), // no such client on the roster
		inv(2, -40, 0, models.StatusUnpaid, ""),
		inv(3, 0, 0, models.StatusUnpaid, ""),
	}
	clients := []models.Client{
		{ID: 1, Name: "Kept"},
		{ID: 2, Name: "Negative"},
		{ID: 3, Name: "Zero"},
	}
	s := Summarize(invoices, clients)
	if len(s.TopClients) != 1 || s.TopClients[0].Name != "Kept" {
		t.Errorf("TopClients = %+v, want only Kept", s.TopClients)
	}
}

func TestMonthlyTrendKeepsLastSixAndSkipsBadDates(t *testing.T) {
	invoices := []models.Invoice{
		inv(0, 10, 0, models.StatusUnpaid, "bogus"),
		inv(0, 10, 0, models.StatusUnpaid, ""),
	}
	for m := 1; m <= 8; m++ {
		invoices = append(invoices, inv(0, float64(m), 0, models.StatusUnpaid, fmt.Sprintf("2025-%02d-01", m)))
	}

	s := Summarize(invoices, nil)
	if len(s.MonthlyData) != 6 {
		t.Fatalf("MonthlyData len = %d, want 6", len(s.MonthlyData))
	}
	if s.MonthlyData[0].Month != "March 2025" {
		t.Errorf("first month = %q, want March 2025", s.MonthlyData[0].Month)
	}
	if s.MonthlyData[5].Month != "August 2025" || s.MonthlyData[5].Amount != 8 {
		t.Errorf("last month = %+v, want August 2025/8", s.MonthlyData[5])
	}
}
