package chart

import "fmt"

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"GBP": "£",
	"EUR": "€",
	"JPY": "¥",
	"AUD": "A$",
	"HKD": "HK$",
}

// FormatPrice renders a price with its currency symbol, two decimals.
func FormatPrice(price float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", sym, price)
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}

// FormatPercent renders a signed percentage, two decimals.
func FormatPercent(percent float64) string {
	if percent >= 0 {
		return fmt.Sprintf("+%.2f%%", percent)
	}
	return fmt.Sprintf("%.2f%%", percent)
}
