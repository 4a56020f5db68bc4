package models

import "time"

// Trend classifies the EMA trend state of an asset.
type Trend string

const (
	TrendStrongUptrend   Trend = "Strong Uptrend"
	TrendStrongDowntrend Trend = "Strong Downtrend"
	TrendModerateUptrend Trend = "Moderate Uptrend"
	TrendChoppy          Trend = "Weak/Choppy"
)

// TechnicalSnapshot captures the latest technical state of an asset.
// Derived once per analysis, immutable afterwards.
type TechnicalSnapshot struct {
	CurrentPrice float64 `json:"current_price"`
	RSI          float64 `json:"rsi"`
	EMA50        float64 `json:"ema_50"`
	EMA200       float64 `json:"ema_200"`
	Trend        Trend   `json:"trend"`
	Support      float64 `json:"support"`
	Resistance   float64 `json:"resistance"`
}

// FundamentalSnapshot captures liquidity, valuation and supply metrics.
// SupplyPercent is nil when the asset has no supply cap.
type FundamentalSnapshot struct {
	MarketCap         float64  `json:"market_cap"`
	Volume            float64  `json:"volume"`
	VolumeMcapRatio   float64  `json:"volume_mcap_ratio"`
	CirculatingSupply float64  `json:"circulating_supply"`
	MaxSupply         *float64 `json:"max_supply,omitempty"`
	SupplyPercent     *float64 `json:"supply_percent,omitempty"`
	YearHigh          float64  `json:"year_high"`
	YearLow           float64  `json:"year_low"`
	RangePosition     float64  `json:"range_position"`
}

// NewsItem is a single validated headline with its polarity in [-1, 1].
type NewsItem struct {
	Title     string  `json:"title"`
	Publisher string  `json:"publisher,omitempty"`
	Link      string  `json:"link,omitempty"`
	Polarity  float64 `json:"polarity"`
}

// SentimentCategory labels the aggregate news sentiment.
type SentimentCategory string

const (
	SentimentBullish SentimentCategory = "Bullish"
	SentimentBearish SentimentCategory = "Bearish"
	SentimentNeutral SentimentCategory = "Neutral"

	// SentimentNoData marks the neutral default when no headlines could be
	// retrieved at all, distinct from a genuinely neutral score.
	SentimentNoData SentimentCategory = "Neutral (no data)"
)

// SentimentSnapshot aggregates per-headline polarity into one score.
// Score is the arithmetic mean of item polarities, 0 if there are none.
type SentimentSnapshot struct {
	Score    float64           `json:"score"`
	Category SentimentCategory `json:"category"`
	Items    []NewsItem        `json:"items"`
}

// Verdict is the display band for a confidence score.
type Verdict string

const (
	VerdictStrongBuy   Verdict = "Strong Buy"
	VerdictModerateBuy Verdict = "Moderate Buy / Hold"
	VerdictWatch       Verdict = "Watch / Risky"
	VerdictAvoid       Verdict = "Strong Sell / Avoid"
)

// VerdictFor maps a confidence score to its display band.
func VerdictFor(score int) Verdict {
	switch {
	case score > 70:
		return VerdictStrongBuy
	case score > 50:
		return VerdictModerateBuy
	case score > 30:
		return VerdictWatch
	default:
		return VerdictAvoid
	}
}

// ConfidenceResult is the final output of one analysis: the weighted 0–100
// confidence score plus the three snapshots it was derived from. One result
// per invocation; never persisted, never shared across analyses.
type ConfidenceResult struct {
	Symbol      string              `json:"symbol"`
	Score       int                 `json:"score"`
	Verdict     Verdict             `json:"verdict"`
	Technical   TechnicalSnapshot   `json:"technical"`
	Fundamental FundamentalSnapshot `json:"fundamental"`
	Sentiment   SentimentSnapshot   `json:"sentiment"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// AnalysisReport bundles the result with the chart composite the display
// layer consumes alongside it.
type AnalysisReport struct {
	Result ConfidenceResult `json:"result"`
	Chart  ChartData        `json:"chart"`
}
