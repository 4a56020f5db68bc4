// Package models defines the core data structures used throughout CoinSight.
package models

import "time"

// OHLCV represents a single candlestick bar of price data.
// Bars are chronological and immutable once fetched.
type OHLCV struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// IndicatorSeries holds derived indicator values aligned index-for-index
// with the candle slice they were computed from. Entries before an
// indicator's warm-up window are zero; callers must read the latest values
// through TechnicalSnapshot, which applies the neutral fallbacks.
type IndicatorSeries struct {
	RSI    []float64 `json:"rsi"`
	EMA50  []float64 `json:"ema_50"`
	EMA200 []float64 `json:"ema_200"`
}

// AssetMetadata is the per-asset fundamentals record supplied once per
// analysis. MaxSupply is nil for uncapped or unknown supply, which is
// distinct from a present-and-zero value.
type AssetMetadata struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name,omitempty"`
	MarketCap         float64  `json:"market_cap"`
	Volume24h         float64  `json:"volume_24h"`
	CirculatingSupply float64  `json:"circulating_supply"`
	MaxSupply         *float64 `json:"max_supply,omitempty"`
	FiftyTwoWeekHigh  float64  `json:"fifty_two_week_high"`
	FiftyTwoWeekLow   float64  `json:"fifty_two_week_low"`
}

// ChartData is the read-only composite handed to the display layer for
// charting: the raw candles plus their derived indicator series. It is a
// copy owned by the result, never a live handle into provider state.
type ChartData struct {
	Candles    []OHLCV         `json:"candles"`
	Indicators IndicatorSeries `json:"indicators"`
}
