package analyzer

import (
	"math"

	"github.com/rahulsm/coinsight/pkg/models"
)

// Heuristic delta rules. The score starts at a neutral base and collects
// additive deltas from each snapshot; the continuous sentiment term replaces
// the older thresholded one to avoid jumps at the category boundary.
const (
	baseScore = 50

	rsiOversoldDelta    = 10
	rsiOverboughtDelta  = -10
	rsiLeaningBullDelta = 2

	strongUptrendDelta   = 10
	strongDowntrendDelta = -15
	aboveLongEMADelta    = 5

	highLiquidityDelta = 10
	lowLiquidityDelta  = -5
	valueZoneDelta     = 10
	topOfRangeDelta    = -10
	inflationRiskDelta = -5

	sentimentWeight = 15
)

// computeScore folds the three snapshots into a 0..100 integer. Callers
// guarantee all three are present; the aggregator never produces a partial
// score.
func computeScore(tech *models.TechnicalSnapshot, fund *models.FundamentalSnapshot, sent models.SentimentSnapshot) int {
	score := float64(baseScore)

	switch {
	case tech.RSI < 30:
		score += rsiOversoldDelta
	case tech.RSI > 70:
		score += rsiOverboughtDelta
	case tech.RSI > 50:
		score += rsiLeaningBullDelta
	}

	switch tech.Trend {
	case models.TrendStrongUptrend:
		score += strongUptrendDelta
	case models.TrendStrongDowntrend:
		score += strongDowntrendDelta
	}
	if tech.CurrentPrice > tech.EMA200 {
		score += aboveLongEMADelta
	}

	switch {
	case fund.VolumeMcapRatio > 0.10:
		score += highLiquidityDelta
	case fund.VolumeMcapRatio < 0.02:
		score += lowLiquidityDelta
	}
	switch {
	case fund.RangePosition < 20:
		score += valueZoneDelta
	case fund.RangePosition > 90:
		score += topOfRangeDelta
	}
	// Uncapped supply carries no emission penalty; only a known cap with
	// most of the supply still unissued does.
	if fund.SupplyPercent != nil && *fund.SupplyPercent < 50 {
		score += inflationRiskDelta
	}

	score += sent.Score * sentimentWeight

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
