package reporting

import (
	"sort"
	"time"

	"github.com/rajatkhanna/invoice-api/internal/billing"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

// StatusBreakdown counts invoices per known payment status. Invoices carrying
// an unknown status value are left out of the breakdown but still count
// toward the money totals.
type StatusBreakdown struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Unpaid  int `json:"unpaid"`
}

// ClientRevenue ranks a client by the revenue invoiced to them.
type ClientRevenue struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Revenue float64 `json:"revenue"`
}

// MonthlyRevenue is one entry of the revenue trend.
type MonthlyRevenue struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Summary is the reporting roll-up over one fetched snapshot of the invoice
// and client collections.
type Summary struct {
	TotalInvoiced    float64          `json:"total_invoiced"`
	TotalPaid        float64          `json:"total_paid"`
	TotalOutstanding float64          `json:"total_outstanding"`
	InvoiceCount     int              `json:"invoice_count"`
	ClientCount      int              `json:"client_count"`
	StatusBreakdown  StatusBreakdown  `json:"status_breakdown"`
	TopClients       []ClientRevenue  `json:"top_clients"`
	MonthlyData      []MonthlyRevenue `json:"monthly_data"`
	AverageInvoice   float64          `json:"average_invoice"`
	CollectionRate   float64          `json:"collection_rate"`
}

// Summarize aggregates stored invoice totals and payment amounts; it never
// recomputes totals from line items. It is pure and performs no I/O, so the
// caller is responsible for passing a consistent snapshot.
func Summarize(invoices []models.Invoice, clients []models.Client) Summary {
	var totalInvoiced, totalPaid float64
	var breakdown StatusBreakdown

	clientRevenue := make(map[uint]float64)
	var clientOrder []uint
	monthly := make(map[string]float64)

	for _, inv := range invoices {
		totalInvoiced += inv.Total
		totalPaid += inv.AmountPaid

		switch inv.Status {
		case models.StatusPaid:
			breakdown.Paid++
		case models.StatusPartial:
			breakdown.Partial++
		case models.StatusUnpaid:
			breakdown.Unpaid++
		}

		if id := inv.For.ID; id != 0 {
			if _, seen := clientRevenue[id]; !seen {
				clientOrder = append(clientOrder, id)
			}
			clientRevenue[id] += inv.Total
		}

		if key := monthKey(inv.Date); key != "" {
			monthly[key] += inv.Total
		}
	}

	summary := Summary{
		TotalInvoiced:    billing.Round2(totalInvoiced),
		TotalPaid:        billing.Round2(totalPaid),
		TotalOutstanding: billing.Round2(totalInvoiced - totalPaid),
		InvoiceCount:     len(invoices),
		ClientCount:      len(clients),
		StatusBreakdown:  breakdown,
		TopClients:       topClients(clientRevenue, clientOrder, clients),
		MonthlyData:      monthlyTrend(monthly),
	}
	if len(invoices) > 0 {
		summary.AverageInvoice = billing.Round2(totalInvoiced / float64(len(invoices)))
	}
	if totalInvoiced > 0 {
		summary.CollectionRate = billing.Round2(totalPaid / totalInvoiced * 100)
	}
	return summary
}

// monthKey derives the YYYY-MM bucket from an invoice date. Dates too short
// to carry a month are excluded from the trend entirely.
func monthKey(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// topClients joins accumulated revenue against the roster, keeps positive
// revenue only, and returns the top 5 sorted descending. The sort is stable,
// so ties keep encounter order.
func topClients(revenue map[uint]float64, order []uint, clients []models.Client) []ClientRevenue {
	roster := make(map[uint]models.Client, len(clients))
	for _, c := range clients {
		roster[c.ID] = c
	}

	top := make([]ClientRevenue, 0, len(order))
	for _, id := range order {
		rev := revenue[id]
		c, known := roster[id]
		if rev <= 0 || !known {
			continue
		}
		top = append(top, ClientRevenue{
			ID:      id,
			Name:    c.Name,
			Email:   c.Email,
			Revenue: billing.Round2(rev),
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > 5 {
		top = top[:5]
	}
	return top
}

// monthlyTrend sorts the buckets ascending by key, drops keys that do not
// parse as a year-month, and keeps the most recent 6 entries present in the
// data (not calendar-relative).
func monthlyTrend(monthly map[string]float64) []MonthlyRevenue {
	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]MonthlyRevenue, 0, len(keys))
	for _, k := range keys {
		t, err := time.Parse("2006-01", k)
		if err != nil {
			continue
		}
		trend = append(trend, MonthlyRevenue{
			Month:  t.Format("January 2006"),
			Amount: billing.Round2(monthly[k]),
		})
	}
	if len(trend) > 6 {
		trend = trend[len(trend)-6:]
	}
	return trend
}
