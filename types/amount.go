package types

import (
	"strconv"
	"strings"
)

// Display formats a monetary value for human display with a currency
// symbol, e.g. Display(49, "usd") == "$49.00". Formatting is a pure
// presentation concern; the totals engine itself never formats values.
func Display(v float64, currency string) string {
	symbol := currencySymbol(currency)
	if v < 0 {
		return "-" + symbol + DisplayMajor(-v, currency)
	}
	return symbol + DisplayMajor(v, currency)
}

// DisplayMajor returns the major-unit string without a currency symbol.
// For currencies with 2 decimal places: "49.00". For zero-decimal
// currencies (JPY): "49".
func DisplayMajor(v float64, currency string) string {
	return strconv.FormatFloat(v, 'f', currencyDecimals(currency), 64)
}

// currencySymbol returns the symbol for a currency code.
func currencySymbol(currency string) string {
	symbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
		"jpy": "¥",
		"cad": "C$",
		"aud": "A$",
		"chf": "CHF ",
		"cny": "¥",
		"sek": "kr ",
		"nzd": "NZ$",
	}
	if sym, ok := symbols[strings.ToLower(currency)]; ok {
		return sym
	}
	return strings.ToUpper(currency) + " "
}

// currencyDecimals returns the number of decimal places for a currency.
func currencyDecimals(currency string) int {
	// Currencies with 0 decimal places
	zeroDecimal := map[string]bool{
		"jpy": true, // Japanese Yen
		"krw": true, // Korean Won
		"vnd": true, // Vietnamese Dong
		"clp": true, // Chilean Peso
		"pyg": true, // Paraguayan Guarani
		"idr": true, // Indonesian Rupiah
	}
	if zeroDecimal[strings.ToLower(currency)] {
		return 0
	}
	// Most currencies have 2 decimal places
	return 2
}
