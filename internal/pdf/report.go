package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rajatkhanna/invoice-api/internal/reporting"
)

// Report renders the financial summary as a PDF document.
func Report(s reporting.Summary) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Arial", "B", 20)
	doc.Cell(130, 12, "Invoice Management Report")
	doc.SetFont("Arial", "", 9)
	doc.CellFormat(60, 12, "Generated: "+time.Now().Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Arial", "B", 14)
	doc.Cell(190, 8, "Financial Summary")
	doc.Ln(10)
	doc.SetFont("Arial", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Total Invoiced: ₹%.2f", s.TotalInvoiced),
		fmt.Sprintf("Total Paid: ₹%.2f", s.TotalPaid),
		fmt.Sprintf("Outstanding: ₹%.2f", s.TotalOutstanding),
		fmt.Sprintf("Collection Rate: %.1f%%", s.CollectionRate),
		fmt.Sprintf("Average Invoice: ₹%.2f", s.AverageInvoice),
		fmt.Sprintf("Total Invoices: %d", s.InvoiceCount),
		fmt.Sprintf("Total Clients: %d", s.ClientCount),
	} {
		doc.Cell(190, 6, tr(line))
		doc.Ln(6)
	}
	doc.Ln(4)

	doc.SetFont("Arial", "B", 13)
	doc.Cell(190, 8, "Invoice Status Breakdown")
	doc.Ln(9)
	doc.SetFont("Arial", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Paid: %d invoices", s.StatusBreakdown.Paid),
		fmt.Sprintf("Partially Paid: %d invoices", s.StatusBreakdown.Partial),
		fmt.Sprintf("Unpaid: %d invoices", s.StatusBreakdown.Unpaid),
	} {
		doc.Cell(190, 6, line)
		doc.Ln(6)
	}
	doc.Ln(4)

	if len(s.TopClients) > 0 {
		doc.SetFont("Arial", "B", 13)
		doc.Cell(190, 8, "Top 5 Clients by Revenue")
		doc.Ln(9)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(140, 7, "Client Name", "B", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, "Revenue", "B", 1, "R", false, 0, "")
		doc.SetFont("Arial", "", 10)
		for _, c := range s.TopClients {
			name := c.Name
			if len(name) > 40 {
				name = name[:40]
			}
			doc.CellFormat(140, 7, tr(name), "", 0, "L", false, 0, "")
			doc.CellFormat(50, 7, tr(fmt.Sprintf("₹%.2f", c.Revenue)), "", 1, "R", false, 0, "")
		}
		doc.Ln(4)
	}

	if len(s.MonthlyData) > 0 {
		doc.SetFont("Arial", "B", 13)
		doc.Cell(190, 8, "Monthly Revenue (Last 6 Months)")
		doc.Ln(9)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(140, 7, "Month", "B", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, "Revenue", "B", 1, "R", false, 0, "")
		doc.SetFont("Arial", "", 10)
		for _, m := range s.MonthlyData {
			doc.CellFormat(140, 7, m.Month, "", 0, "L", false, 0, "")
			doc.CellFormat(50, 7, tr(fmt.Sprintf("₹%.2f", m.Amount)), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
