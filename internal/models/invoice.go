package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PaymentStatus tracks how much of an invoice has been settled.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// DefaultCurrency and DefaultGSTRate apply when a create request omits them.
const (
	DefaultCurrency = "INR"
	DefaultGSTRate  = 18.0
)

// LineItem is one billable row of an invoice. Quantity, unit price and tax
// rate come in as FlexNumber so a malformed row degrades to a skip instead of
// rejecting the whole document.
type LineItem struct {
	Description string     `json:"description"`
	Quantity    FlexNumber `json:"quantity"`
	UnitPrice   FlexNumber `json:"unit_price"`
	Tax         FlexNumber `json:"tax"`
}

// Logo points at an uploaded logo file.
type Logo struct {
	Filename     string `json:"filename,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Party is the issuing side of an invoice.
type Party struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Logo    *Logo  `json:"logo,omitempty"`
}

// ClientRef is the client snapshot embedded in an invoice. ID 0 means the
// invoice carries no client reference.
type ClientRef struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Invoice is stored document-style: items and party snapshots live in JSON
// columns, the derived total and payment state in plain columns. ClientID
// mirrors For.ID so the referential-integrity guard and per-client queries
// stay plain SQL.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex" json:"invoice_number"`
	Date          string        `gorm:"size:10" json:"date,omitempty"`
	DueDate       string        `gorm:"size:10" json:"due_date,omitempty"`
	Items         []LineItem    `gorm:"serializer:json" json:"items"`
	Currency      string        `gorm:"size:3;default:'INR'" json:"currency"`
	GSTRate       float64       `json:"gst_rate"`
	Total         float64       `json:"total"`
	Status        PaymentStatus `gorm:"size:20;index;default:'unpaid'" json:"status"`
	AmountPaid    float64       `json:"amount_paid"`
	From          Party         `gorm:"serializer:json" json:"from"`
	For           ClientRef     `gorm:"serializer:json" json:"for"`
	ClientID      uint          `gorm:"index" json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// GenerateInvoiceNumber returns the next number in the INV-%04d sequence.
// Zero-padding keeps lexicographic and numeric order aligned, so the highest
// existing number is the last one in string order.
func GenerateInvoiceNumber(db *gorm.DB) (string, error) {
	var last Invoice
	err := db.Select("invoice_number").Order("invoice_number desc").First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "INV-0001", nil
		}
		return "", err
	}
	parts := strings.SplitN(last.InvoiceNumber, "-", 2)
	if len(parts) != 2 {
		return "INV-0001", nil
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "INV-0001", nil
	}
	return fmt.Sprintf("INV-%04d", n+1), nil
}
