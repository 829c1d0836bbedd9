package collector

import "strings"

// NormalizeSymbol upper-cases symbol and appends the exchange suffix unless
// it already carries one. Index tickers ("^NSEI") are left alone.
func NormalizeSymbol(symbol, suffix string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || suffix == "" || strings.HasPrefix(s, "^") || strings.Contains(s, ".") {
		return s
	}
	return s + strings.ToUpper(suffix)
}

// DisplaySymbol strips the exchange suffix for presentation.
func DisplaySymbol(symbol, suffix string) string {
	if suffix == "" {
		return symbol
	}
	return strings.TrimSuffix(symbol, strings.ToUpper(suffix))
}
