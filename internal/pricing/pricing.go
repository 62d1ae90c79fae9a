// Package pricing holds the money math for checkout and receipts. Every
// function is pure: same inputs, same outputs, no I/O.
package pricing

import (
	"fmt"
	"time"
)

const (
	DiscountFixed      = 1
	DiscountPercentage = 2
)

// Discount returns the amount to subtract from the subtotal. A fixed
// discount is returned verbatim and is deliberately not capped to the
// subtotal; checkout rejects underpayment separately, so an oversized
// fixed discount can only lower the charge, never invert it into a refund.
// Unknown types discount nothing.
func Discount(subtotal float64, discountType int, amount float64) float64 {
	switch discountType {
	case DiscountFixed:
		return amount
	case DiscountPercentage:
		return subtotal * amount / 100
	default:
		return 0
	}
}

func Total(subtotal, tax float64, discountType int, amount float64) float64 {
	return subtotal - Discount(subtotal, discountType, amount) + tax
}

// Change is negative when the payment does not cover the total. Callers
// decide whether to reject; checkout does.
func Change(total, amountPaid float64) float64 {
	return amountPaid - total
}

// ReceiptNumber builds the human-readable receipt code:
// <prefix>/<cashier id>/<YYYYMMDD>/<transaction id, zero-padded>. The id is
// padded to at least four digits and grows past that without truncation.
func ReceiptNumber(prefix string, userID int, date time.Time, transactionID int) string {
	return fmt.Sprintf("%s/%d/%s/%04d", prefix, userID, date.Format("20060102"), transactionID)
}
