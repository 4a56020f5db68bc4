// Package fundamental derives liquidity, supply and valuation-range metrics
// from an asset's metadata record.
package fundamental

import (
	"github.com/rahulsm/coinsight/pkg/models"
)

// Analyze builds the fundamental snapshot for an asset. When the 24h volume
// is missing from the metadata it falls back to the volume of the most
// recent candle. Returns nil when metadata is absent; a nil snapshot means
// the final score cannot be produced.
func Analyze(meta *models.AssetMetadata, candles []models.OHLCV) *models.FundamentalSnapshot {
	if meta == nil {
		return nil
	}

	volume := meta.Volume24h
	if volume == 0 && len(candles) > 0 {
		volume = candles[len(candles)-1].Volume
	}

	snap := &models.FundamentalSnapshot{
		MarketCap:         meta.MarketCap,
		Volume:            volume,
		CirculatingSupply: meta.CirculatingSupply,
		MaxSupply:         meta.MaxSupply,
		YearHigh:          meta.FiftyTwoWeekHigh,
		YearLow:           meta.FiftyTwoWeekLow,
	}

	if meta.MarketCap > 0 {
		snap.VolumeMcapRatio = volume / meta.MarketCap
	}

	// Supply percent only exists for capped assets. Nil stays nil: an
	// uncapped asset is not the same as one at 0% issuance.
	if meta.MaxSupply != nil && *meta.MaxSupply > 0 {
		pct := meta.CirculatingSupply / *meta.MaxSupply * 100
		snap.SupplyPercent = &pct
	}

	var price float64
	if len(candles) > 0 {
		price = candles[len(candles)-1].Close
	}
	snap.RangePosition = rangePosition(price, meta.FiftyTwoWeekLow, meta.FiftyTwoWeekHigh)

	return snap
}

// rangePosition places the price within the 52-week band as a percentage,
// 0 at the low and 100 at the high. A degenerate band reports the midpoint.
func rangePosition(price, low, high float64) float64 {
	if high <= low {
		return 50
	}
	pos := (price - low) / (high - low) * 100
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}
