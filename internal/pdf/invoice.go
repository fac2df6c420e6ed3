package pdf

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rajatkhanna/invoice-api/internal/billing"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

// Invoice renders an invoice document. client may be nil when the invoice
// carries no resolvable client reference; logoPath may be "" when no logo
// file is available. SVG logos are skipped since gofpdf cannot embed them.
func Invoice(inv models.Invoice, client *models.Client, logoPath string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	if logoPath != "" && strings.ToLower(filepath.Ext(logoPath)) != ".svg" {
		doc.ImageOptions(logoPath, 10, 10, 40, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		doc.SetY(34)
	}

	companyName := inv.From.Name
	if companyName == "" {
		companyName = "Your Company"
	}
	doc.SetFont("Arial", "B", 16)
	doc.Cell(40, 10, tr(companyName))
	doc.Ln(14)

	doc.SetFont("Arial", "B", 20)
	doc.CellFormat(190, 12, tr("INVOICE "+inv.InvoiceNumber), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Arial", "", 11)
	doc.Cell(95, 6, tr("Date: "+inv.Date))
	doc.Ln(6)
	doc.Cell(95, 6, tr("Due Date: "+inv.DueDate))
	doc.Ln(6)
	doc.Cell(95, 6, tr("Status: "+strings.ToUpper(string(inv.Status))))
	doc.Ln(10)

	writePartyBlock(doc, tr, inv, client)

	symbol := billing.CurrencySymbol(inv.Currency)
	subtotal, itemTax := writeItemsTable(doc, tr, inv.Items, symbol)

	gst := subtotal * inv.GSTRate / 100
	total := billing.Round2(subtotal + itemTax + gst)

	doc.Ln(2)
	doc.SetFont("Arial", "", 11)
	writeTotalRow(doc, tr, "Subtotal:", symbol, billing.Round2(subtotal), false)
	writeTotalRow(doc, tr, "Item Tax:", symbol, billing.Round2(itemTax), false)
	writeTotalRow(doc, tr, fmt.Sprintf("GST (%.1f%%):", inv.GSTRate), symbol, billing.Round2(gst), false)
	writeTotalRow(doc, tr, "TOTAL:", symbol, total, true)

	if inv.AmountPaid > 0 {
		doc.Ln(6)
		doc.SetFont("Arial", "B", 11)
		doc.Cell(95, 6, tr(fmt.Sprintf("Amount Paid: %s%.2f", symbol, inv.AmountPaid)))
		doc.Ln(6)
		if balance := total - inv.AmountPaid; balance > 0 {
			doc.Cell(95, 6, tr(fmt.Sprintf("Balance Due: %s%.2f", symbol, balance)))
			doc.Ln(6)
		}
	}

	doc.Ln(14)
	doc.SetFont("Arial", "I", 10)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(190, 6, "Thank you for your business!", "", 1, "C", false, 0, "")
	doc.CellFormat(190, 6, "Generated on "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writePartyBlock lays out the From and Bill To columns side by side.
func writePartyBlock(doc *gofpdf.Fpdf, tr func(string) string, inv models.Invoice, client *models.Client) {
	left := partyLines(inv.From.Name, inv.From.Email, inv.From.Phone, inv.From.Address)
	var right []string
	if client != nil {
		right = partyLines(client.Name, client.Email, client.Phone, client.BillingAddress)
	} else {
		right = partyLines(inv.For.Name, inv.For.Email, "", "")
	}

	doc.SetFont("Arial", "B", 12)
	doc.Cell(95, 8, "From:")
	doc.Cell(95, 8, "Bill To:")
	doc.Ln(8)

	doc.SetFont("Arial", "", 11)
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		doc.Cell(95, 6, tr(l))
		doc.Cell(95, 6, tr(r))
		doc.Ln(6)
	}
	doc.Ln(6)
}

func partyLines(fields ...string) []string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}

// writeItemsTable renders the line items and returns the accumulated
// subtotal and item tax. Rows with non-coercible numeric fields are skipped,
// matching the totals engine.
func writeItemsTable(doc *gofpdf.Fpdf, tr func(string) string, items []models.LineItem, symbol string) (subtotal, itemTax float64) {
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(25, 118, 210)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(70, 8, "Description", "1", 0, "C", true, 0, "")
	doc.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	doc.CellFormat(35, 8, "Unit Price", "1", 0, "C", true, 0, "")
	doc.CellFormat(25, 8, "Tax %", "1", 0, "C", true, 0, "")
	doc.CellFormat(40, 8, "Total", "1", 1, "C", true, 0, "")

	doc.SetFont("Arial", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, item := range items {
		res := billing.LineTotals(item)
		if res.Skipped {
			continue
		}
		subtotal += res.Subtotal
		itemTax += res.Tax
		doc.CellFormat(70, 7, tr(item.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%g", item.Quantity.Value), "1", 0, "C", false, 0, "")
		doc.CellFormat(35, 7, tr(fmt.Sprintf("%s%.2f", symbol, item.UnitPrice.Value)), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%.1f%%", item.Tax.Value), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 7, tr(fmt.Sprintf("%s%.2f", symbol, res.Subtotal+res.Tax)), "1", 1, "R", false, 0, "")
	}
	return subtotal, itemTax
}

func writeTotalRow(doc *gofpdf.Fpdf, tr func(string) string, label, symbol string, amount float64, emphasize bool) {
	if emphasize {
		doc.SetFont("Arial", "B", 12)
	}
	doc.CellFormat(150, 7, tr(label), "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, tr(fmt.Sprintf("%s%.2f", symbol, amount)), "", 1, "R", false, 0, "")
	if emphasize {
		doc.SetFont("Arial", "", 11)
	}
}
