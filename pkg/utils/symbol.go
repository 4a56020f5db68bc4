// Package utils provides common utility functions for CoinSight.
package utils

import "strings"

// Common coin aliases accepted on input.
var coinAliases = map[string]string{
	"BITCOIN":  "BTC",
	"XBT":      "BTC",
	"ETHEREUM": "ETH",
	"ETHER":    "ETH",
	"SOLANA":   "SOL",
	"CARDANO":  "ADA",
	"RIPPLE":   "XRP",
	"DOGECOIN": "DOGE",
	"LITECOIN": "LTC",
	"POLKADOT": "DOT",
	"POLYGON":  "MATIC",
	"TETHER":   "USDT",
}

// quoteSuffix is the market-quote suffix Yahoo Finance uses for crypto pairs.
const quoteSuffix = "-USD"

// NormalizeSymbol converts free-form user input into the provider pair form,
// e.g. "btc" → "BTC-USD", "bitcoin" → "BTC-USD", "eth-usd" → "ETH-USD".
func NormalizeSymbol(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, quoteSuffix) {
		return s
	}
	if alias, ok := coinAliases[s]; ok {
		s = alias
	}
	return s + quoteSuffix
}

// BaseSymbol strips the quote suffix from a normalized pair,
// e.g. "BTC-USD" → "BTC". Used for news queries keyed by the bare symbol.
func BaseSymbol(symbol string) string {
	return strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(symbol)), quoteSuffix)
}
