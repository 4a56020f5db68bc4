// Package technical computes price-derived indicators and trend state for
// crypto OHLCV series. All functions operate on []models.OHLCV candle slices
// and are pure: no I/O, no shared state.
package technical

import (
	"github.com/rahulsm/coinsight/pkg/models"
)

// Indicator parameters. Daily bars assumed throughout.
const (
	rsiPeriod      = 14
	emaShortPeriod = 50
	emaLongPeriod  = 200
)

// RSI calculates the Relative Strength Index over the given period using
// Wilder's smoothing. Returns nil when the series is shorter than period+1;
// entries before the warm-up window are zero.
func RSI(candles []models.OHLCV, period int) []float64 {
	if period <= 0 {
		period = rsiPeriod
	}
	n := len(candles)
	if n < period+1 {
		return nil
	}

	rsi := make([]float64, n)
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		rsi[period] = 100
	} else {
		rs := avgGain / avgLoss
		rsi[period] = 100 - (100 / (1 + rs))
	}

	// Wilder's smoothing for subsequent values.
	for i := period + 1; i < n; i++ {
		change := candles[i].Close - candles[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		if avgLoss == 0 {
			rsi[i] = 100
		} else {
			rs := avgGain / avgLoss
			rsi[i] = 100 - (100 / (1 + rs))
		}
	}

	return rsi
}

// EMA calculates the Exponential Moving Average for the given period,
// seeded with the SMA of the first period values. Entries before the
// warm-up window are zero.
func EMA(data []float64, period int) []float64 {
	n := len(data)
	if n == 0 || period <= 0 {
		return make([]float64, n)
	}

	ema := make([]float64, n)
	k := 2.0 / float64(period+1)

	if n < period {
		return ema
	}
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	ema[period-1] = sum / float64(period)

	for i := period; i < n; i++ {
		ema[i] = data[i]*k + ema[i-1]*(1-k)
	}

	return ema
}

// Series computes the full indicator set used for charting: RSI(14) plus
// the 50 and 200 day EMAs, aligned index-for-index with the candles.
func Series(candles []models.OHLCV) models.IndicatorSeries {
	closes := extractCloses(candles)
	rsi := RSI(candles, rsiPeriod)
	if rsi == nil {
		rsi = make([]float64, len(candles))
	}
	return models.IndicatorSeries{
		RSI:    rsi,
		EMA50:  EMA(closes, emaShortPeriod),
		EMA200: EMA(closes, emaLongPeriod),
	}
}

func extractCloses(candles []models.OHLCV) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
