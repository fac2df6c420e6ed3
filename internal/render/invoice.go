// Package render produces the HTML invoice document used as the lightweight
// alternative to PDF generation.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/rajatkhanna/invoice-api/internal/billing"
	"github.com/rajatkhanna/invoice-api/internal/models"
)

type lineRow struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	TaxRate     float64
	Total       float64
}

type invoiceData struct {
	Number       string
	Date         string
	Status       string
	Symbol       string
	CompanyName  string
	CompanyEmail string
	LogoURL      string
	ClientName   string
	ClientEmail  string
	Rows         []lineRow
	Subtotal     float64
	ItemTax      float64
	GSTRate      float64
	GSTAmount    float64
	Total        float64
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: Arial, sans-serif; font-size: 14px; color: #333; }
.invoice-container { max-width: 800px; margin: 0 auto; padding: 40px 20px; }
.header { display: flex; justify-content: space-between; margin-bottom: 40px; border-bottom: 3px solid #1976d2; padding-bottom: 20px; }
.company-info img { max-height: 80px; max-width: 200px; margin-bottom: 10px; }
.company-info h1 { color: #1976d2; font-size: 28px; margin-bottom: 8px; }
.invoice-meta { text-align: right; }
.invoice-meta h2 { color: #1976d2; font-size: 24px; margin-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
th, td { padding: 12px 8px; border: 1px solid #ddd; }
th { background-color: #1976d2; color: white; }
.totals { text-align: right; }
.totals .grand { font-weight: bold; font-size: 16px; }
</style>
</head>
<body>
<div class="invoice-container">
  <div class="header">
    <div class="company-info">
      {{if .LogoURL}}<img src="{{.LogoURL}}" alt="Company Logo">{{end}}
      <h1>{{.CompanyName}}</h1>
      <p>{{.CompanyEmail}}</p>
    </div>
    <div class="invoice-meta">
      <h2>INVOICE</h2>
      <p>#{{.Number}}</p>
      <p>{{.Date}}</p>
      <p>{{.Status}}</p>
    </div>
  </div>
  <div style="margin-bottom: 30px;">
    <h3>Bill To: {{.ClientName}}</h3>
    <p>{{.ClientEmail}}</p>
  </div>
  <table>
    <thead>
      <tr><th>Description</th><th>Qty</th><th>Price</th><th>Tax</th><th>Total</th></tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td>{{.Description}}</td>
        <td style="text-align: center">{{.Quantity}}</td>
        <td style="text-align: right">{{$.Symbol}}{{printf "%.2f" .UnitPrice}}</td>
        <td style="text-align: center">{{printf "%.1f" .TaxRate}}%</td>
        <td style="text-align: right"><strong>{{$.Symbol}}{{printf "%.2f" .Total}}</strong></td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="totals">
    <p>Subtotal: {{.Symbol}}{{printf "%.2f" .Subtotal}}</p>
    <p>Item Tax: {{.Symbol}}{{printf "%.2f" .ItemTax}}</p>
    <p>GST ({{printf "%.1f" .GSTRate}}%): {{.Symbol}}{{printf "%.2f" .GSTAmount}}</p>
    <p class="grand">Final Total: {{.Symbol}}{{printf "%.2f" .Total}}</p>
  </div>
</div>
</body>
</html>
`))

// InvoiceHTML renders an invoice as a standalone HTML document. client may
// be nil; the embedded snapshot fills in then.
func InvoiceHTML(inv models.Invoice, client *models.Client) ([]byte, error) {
	data := invoiceData{
		Number:       inv.InvoiceNumber,
		Date:         inv.Date,
		Status:       strings.ToUpper(string(inv.Status)),
		Symbol:       billing.CurrencySymbol(inv.Currency),
		CompanyName:  inv.From.Name,
		CompanyEmail: inv.From.Email,
		GSTRate:      inv.GSTRate,
	}
	if data.CompanyName == "" {
		data.CompanyName = "Your Company"
	}
	if inv.From.Logo != nil {
		data.LogoURL = inv.From.Logo.URL
	}
	if client != nil {
		data.ClientName = client.Name
		data.ClientEmail = client.Email
	} else {
		data.ClientName = inv.For.Name
		data.ClientEmail = inv.For.Email
	}
	if data.ClientName == "" {
		data.ClientName = "Client"
	}

	for _, item := range inv.Items {
		res := billing.LineTotals(item)
		if res.Skipped {
			continue
		}
		data.Subtotal += res.Subtotal
		data.ItemTax += res.Tax
		data.Rows = append(data.Rows, lineRow{
			Description: item.Description,
			Quantity:    item.Quantity.Value,
			UnitPrice:   item.UnitPrice.Value,
			TaxRate:     item.Tax.Value,
			Total:       res.Subtotal + res.Tax,
		})
	}
	data.GSTAmount = data.Subtotal * inv.GSTRate / 100
	data.Total = billing.Round2(data.Subtotal + data.ItemTax + data.GSTAmount)

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return buf.Bytes(), nil
}
