package billing

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
}

// CurrencySymbol maps a currency code to its display symbol. Unknown codes
// fall back to ₹.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return "₹"
}
