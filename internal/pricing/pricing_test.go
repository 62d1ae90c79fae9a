package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiscount(t *testing.T) {
	require.Equal(t, float64(1000), Discount(10000, DiscountPercentage, 10))
	require.Equal(t, float64(1500), Discount(10000, DiscountFixed, 1500))
	require.Equal(t, float64(0), Discount(10000, 0, 999))
	require.Equal(t, float64(0), Discount(10000, 7, 999))
}

func TestDiscountFixedNotCapped(t *testing.T) {
	// A fixed discount larger than the subtotal passes through verbatim.
	require.Equal(t, float64(20000), Discount(10000, DiscountFixed, 20000))
	require.Equal(t, float64(-9000), Total(10000, 1000, DiscountFixed, 20000))
}

func TestTotal(t *testing.T) {
	require.Equal(t, float64(10000), Total(10000, 1000, DiscountPercentage, 10))
	require.Equal(t, float64(9500), Total(10000, 500, DiscountFixed, 1000))
	require.Equal(t, float64(11000), Total(10000, 1000, 0, 0))
}

func TestChange(t *testing.T) {
	require.Equal(t, float64(5000), Change(10000, 15000))
	require.Equal(t, float64(-5000), Change(10000, 5000))
	require.Equal(t, float64(0), Change(10000, 10000))
}

func TestReceiptNumber(t *testing.T) {
	date := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	require.Equal(t, "CS/3/20250314/0042", ReceiptNumber("CS", 3, date, 42))
	require.Equal(t, "CS/3/20250314/0007", ReceiptNumber("CS", 3, date, 7))

	// Ids past four digits grow instead of truncating.
	require.Equal(t, "CS/3/20250314/123456", ReceiptNumber("CS", 3, date, 123456))
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "IDR 10,000", FormatPrice(10000))
	require.Equal(t, "IDR 1,250,000", FormatPrice(1250000))
	require.Equal(t, "IDR 0", FormatPrice(0))
}

func TestFormatDateTime(t *testing.T) {
	date := time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC)
	require.Equal(t, "Mar 14, 2025, 3:04 PM", FormatDateTime(date))
}
