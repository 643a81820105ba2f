// Package format renders backend values for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatPrice renders an amount as Indonesian rupiah with no decimal
// places, e.g. 150000 -> "Rp 150.000". Fractions are rounded half away
// from zero.
func FormatPrice(price float64) string {
	return "Rp " + idPrinter.Sprintf("%d", int64(math.Round(price)))
}

// DiscountedPrice applies an optional percentage discount. Discounts
// outside 0..100 are clamped.
func DiscountedPrice(price float64, discount *float64) float64 {
	if discount == nil {
		return price
	}
	d := math.Max(0, math.Min(100, *discount))
	return price * (100 - d) / 100
}
