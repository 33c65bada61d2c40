package marketdata

import "strings"

// suffixCurrencies maps exchange suffixes to their trading currency,
// checked in order. Unsuffixed symbols are assumed North American.
var suffixCurrencies = []struct {
	suffix   string
	currency string
}{
	{".TO", "CAD"},
	{".V", "CAD"},
	{".L", "GBP"},
	{".LON", "GBP"},
	{".F", "EUR"},
	{".DE", "EUR"},
	{".T", "JPY"},
	{".TYO", "JPY"},
	{".AX", "AUD"},
	{".ASX", "AUD"},
	{".HK", "HKD"},
}

// currencyForSymbol infers a currency from the symbol's exchange suffix.
func currencyForSymbol(symbol string) string {
	for _, sc := range suffixCurrencies {
		if strings.HasSuffix(symbol, sc.suffix) {
			return sc.currency
		}
	}
	return "USD"
}
