package billing

import (
	"errors"

	"github.com/rajatkhanna/invoice-api/internal/models"
)

// ErrNonPositivePayment rejects zero and negative payment amounts.
var ErrNonPositivePayment = errors.New("payment amount must be positive")

// StatusFor derives the payment status from the paid/total pair. Overpayment
// is not an error; anything at or above the total is simply paid.
func StatusFor(amountPaid, total float64) models.PaymentStatus {
	switch {
	case amountPaid >= total:
		return models.StatusPaid
	case amountPaid > 0:
		return models.StatusPartial
	default:
		return models.StatusUnpaid
	}
}

// ApplyPayment adds a strictly positive payment to the running amount and
// re-derives the status. On rejection the inputs are returned unchanged so
// callers can skip the write entirely.
func ApplyPayment(amountPaid, total, payment float64) (float64, models.PaymentStatus, error) {
	if payment <= 0 {
		return amountPaid, StatusFor(amountPaid, total), ErrNonPositivePayment
	}
	newPaid := Round2(amountPaid + payment)
	return newPaid, StatusFor(newPaid, total), nil
}
