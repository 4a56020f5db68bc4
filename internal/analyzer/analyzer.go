// Package analyzer runs the full confidence pipeline for one symbol:
// market-data retrieval, the three signal scorers, and the final
// aggregation into a 0..100 score.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rahulsm/coinsight/internal/analysis/fundamental"
	"github.com/rahulsm/coinsight/internal/analysis/sentiment"
	"github.com/rahulsm/coinsight/internal/analysis/technical"
	"github.com/rahulsm/coinsight/pkg/models"
	"github.com/rahulsm/coinsight/pkg/utils"
)

// ErrInsufficientData reports that a mandatory snapshot could not be built,
// so no final score exists. Partial scores are never produced.
type ErrInsufficientData struct {
	Symbol string
	Reason string
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient data for %s: %s", e.Symbol, e.Reason)
}

// MarketSource provides candles and the fundamentals record for a symbol.
type MarketSource interface {
	GetDailyHistory(ctx context.Context, symbol string, lookbackDays int) ([]models.OHLCV, error)
	GetAssetMetadata(ctx context.Context, symbol string) (*models.AssetMetadata, error)
}

// HeadlineProvider collects recent headlines, best-effort.
type HeadlineProvider interface {
	GetHeadlines(ctx context.Context, symbol string) []models.NewsItem
}

// Options tune the analysis window and sentiment categorisation.
type Options struct {
	LookbackDays       int     // trailing daily-candle window
	SentimentThreshold float64 // neutral band half-width
}

// Analyzer orchestrates one analysis per call. It holds no per-request
// state; concurrent calls are independent.
type Analyzer struct {
	market MarketSource
	news   HeadlineProvider
	opts   Options
	log    zerolog.Logger
}

// New creates an analyzer over the given market and news sources.
func New(market MarketSource, news HeadlineProvider, opts Options, log zerolog.Logger) *Analyzer {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 365
	}
	if opts.SentimentThreshold <= 0 {
		opts.SentimentThreshold = sentiment.DefaultThreshold
	}
	return &Analyzer{market: market, news: news, opts: opts, log: log}
}

// Analyze runs the pipeline for a raw user-entered symbol and returns the
// confidence result plus the chart composite. The candle fetch is the only
// fatal dependency; metadata failure surfaces as *ErrInsufficientData and
// news failure degrades to the no-data sentiment state.
func (a *Analyzer) Analyze(ctx context.Context, rawSymbol string) (*models.AnalysisReport, error) {
	symbol := utils.NormalizeSymbol(rawSymbol)
	start := time.Now()

	candles, err := a.market.GetDailyHistory(ctx, symbol, a.opts.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("market data: %w", err)
	}

	var (
		techSnap *models.TechnicalSnapshot
		fundSnap *models.FundamentalSnapshot
		sentSnap models.SentimentSnapshot
	)

	// The three scorers read disjoint immutable inputs.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		techSnap = technical.Analyze(candles)
		return nil
	})
	g.Go(func() error {
		meta, err := a.market.GetAssetMetadata(gctx, symbol)
		if err != nil {
			a.log.Warn().Err(err).Str("symbol", symbol).Msg("metadata unavailable")
			meta = nil
		}
		fundSnap = fundamental.Analyze(meta, candles)
		return nil
	})
	g.Go(func() error {
		items := a.news.GetHeadlines(gctx, symbol)
		sentSnap = sentiment.Analyze(items, a.opts.SentimentThreshold)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if techSnap == nil {
		return nil, &ErrInsufficientData{Symbol: symbol, Reason: "empty price history"}
	}
	if fundSnap == nil {
		return nil, &ErrInsufficientData{Symbol: symbol, Reason: "no fundamentals metadata"}
	}

	score := computeScore(techSnap, fundSnap, sentSnap)
	result := models.ConfidenceResult{
		Symbol:      symbol,
		Score:       score,
		Verdict:     models.VerdictFor(score),
		Technical:   *techSnap,
		Fundamental: *fundSnap,
		Sentiment:   sentSnap,
		GeneratedAt: time.Now().UTC(),
	}

	a.log.Info().
		Str("symbol", symbol).
		Int("score", score).
		Str("verdict", string(result.Verdict)).
		Dur("took", time.Since(start)).
		Msg("analysis complete")

	return &models.AnalysisReport{
		Result: result,
		Chart: models.ChartData{
			Candles:    candles,
			Indicators: technical.Series(candles),
		},
	}, nil
}
