package pricing

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount the way receipts print it: grouped
// thousands, no decimals. Rupiah has no commonly used minor unit.
func FormatPrice(amount float64) string {
	return printer.Sprintf("IDR %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatDateTime matches the medium-date, short-time style the terminal UI
// shows on receipts and history rows, e.g. "Jan 2, 2006, 3:04 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}
