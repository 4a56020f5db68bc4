package technical

import (
	"github.com/rahulsm/coinsight/pkg/models"
)

const (
	// swingWindow is the trailing bar count used for support/resistance.
	swingWindow = 30

	// neutralRSI is the fallback when the series is too short for RSI.
	neutralRSI = 50
)

// Analyze builds the technical snapshot for a candle series: latest RSI,
// the 50/200 day EMAs, trend classification and trailing swing levels.
// Indicators still inside their warm-up window fall back to neutral values
// (RSI 50, EMA equal to the current close) so short histories classify as
// Weak/Choppy rather than failing. Returns nil for an empty series.
func Analyze(candles []models.OHLCV) *models.TechnicalSnapshot {
	if len(candles) == 0 {
		return nil
	}

	closes := extractCloses(candles)
	current := closes[len(closes)-1]

	snap := &models.TechnicalSnapshot{
		CurrentPrice: current,
		RSI:          latestOr(RSI(candles, rsiPeriod), rsiPeriod+1, neutralRSI),
		EMA50:        latestOr(EMA(closes, emaShortPeriod), emaShortPeriod, current),
		EMA200:       latestOr(EMA(closes, emaLongPeriod), emaLongPeriod, current),
	}
	snap.Trend = classifyTrend(current, snap.EMA50, snap.EMA200)
	snap.Support, snap.Resistance = swingLevels(candles, swingWindow)
	return snap
}

// classifyTrend orders price against the two EMAs. The strong cases require
// full alignment; a close above only the long EMA is a moderate uptrend.
func classifyTrend(close, emaShort, emaLong float64) models.Trend {
	switch {
	case close > emaShort && emaShort > emaLong:
		return models.TrendStrongUptrend
	case close < emaShort && emaShort < emaLong:
		return models.TrendStrongDowntrend
	case close > emaLong:
		return models.TrendModerateUptrend
	default:
		return models.TrendChoppy
	}
}

// swingLevels returns the lowest low and highest high over the trailing
// window bars.
func swingLevels(candles []models.OHLCV, window int) (support, resistance float64) {
	start := len(candles) - window
	if start < 0 {
		start = 0
	}
	support = candles[start].Low
	resistance = candles[start].High
	for _, c := range candles[start+1:] {
		if c.Low < support {
			support = c.Low
		}
		if c.High > resistance {
			resistance = c.High
		}
	}
	return support, resistance
}

// latestOr returns the last value of a series that has cleared its warm-up
// window of minLen points, or the fallback otherwise.
func latestOr(vals []float64, minLen int, fallback float64) float64 {
	if len(vals) < minLen {
		return fallback
	}
	return vals[len(vals)-1]
}
