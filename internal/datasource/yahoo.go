package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahulsm/coinsight/internal/infra"
	"github.com/rahulsm/coinsight/pkg/models"
)

// DefaultYahooBaseURL is the Yahoo Finance query host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YFinance fetches crypto market data from Yahoo Finance's public APIs
// (v8 chart for OHLCV, v10 quoteSummary for asset metadata, v1 search for
// company news). No API key required.
type YFinance struct {
	baseURL  string
	cache    *infra.Cache
	limiter  *infra.RateLimiter
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewYFinance creates a Yahoo Finance source with the given cache TTL.
// Caching is per-ticker and time-bounded; analyzer instances themselves
// hold no state across requests.
func NewYFinance(baseURL string, cacheTTL time.Duration, log zerolog.Logger) *YFinance {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YFinance{
		baseURL:  baseURL,
		cache:    infra.NewCache(cacheTTL),
		limiter:  infra.NewRateLimiter(5, time.Second), // 5 req/s
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// GetDailyHistory returns the daily OHLCV series for the trailing lookback
// window. An empty series or a request error is fatal for the analysis and
// surfaces as *ErrNoData.
func (y *YFinance) GetDailyHistory(ctx context.Context, symbol string, lookbackDays int) ([]models.OHLCV, error) {
	cacheKey := fmt.Sprintf("chart:%s:%d", symbol, lookbackDays)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.([]models.OHLCV), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		y.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	var resp yfChartResponse
	if err := y.fetchJSON(ctx, reqURL, &resp); err != nil {
		y.log.Warn().Err(err).Str("symbol", symbol).Msg("chart fetch failed")
		return nil, &ErrNoData{Symbol: symbol}
	}
	if resp.Chart.Error != nil {
		y.log.Warn().Str("symbol", symbol).Str("code", resp.Chart.Error.Code).Msg("chart API error")
		return nil, &ErrNoData{Symbol: symbol}
	}
	if len(resp.Chart.Result) == 0 {
		return nil, &ErrNoData{Symbol: symbol}
	}

	candles := parseCandles(resp.Chart.Result[0])
	if len(candles) == 0 {
		return nil, &ErrNoData{Symbol: symbol}
	}

	y.cache.SetWithTTL(cacheKey, candles, y.cacheTTL)
	return candles, nil
}

// GetAssetMetadata returns the fundamentals record for a symbol from the
// quoteSummary endpoint. A failure here is not fatal to the fetch stage;
// the caller decides (absent fundamentals mean no final score).
func (y *YFinance) GetAssetMetadata(ctx context.Context, symbol string) (*models.AssetMetadata, error) {
	cacheKey := "meta:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.AssetMetadata), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail",
		y.baseURL, url.PathEscape(symbol))

	var resp yfQuoteSummaryResponse
	if err := y.fetchJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("metadata %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("metadata %s: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("metadata %s: empty result", symbol)
	}

	meta := buildMetadata(symbol, resp.QuoteSummary.Result[0])
	y.cache.SetWithTTL(cacheKey, meta, y.cacheTTL)
	return meta, nil
}

// CompanyNews returns up to limit recent headlines for a symbol from the
// Yahoo search endpoint. Items with an empty title are dropped.
func (y *YFinance) CompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		y.baseURL, url.QueryEscape(symbol), limit)

	var resp yfSearchResponse
	if err := y.fetchJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("news %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(resp.News))
	for _, n := range resp.News {
		if n.Title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:     n.Title,
			Publisher: n.Publisher,
			Link:      n.Link,
		})
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

// --- Internal helpers ---

// fetchJSON performs a GET request and decodes the response into dest.
func (y *YFinance) fetchJSON(ctx context.Context, reqURL string, dest any) error {
	body, _, err := infra.DoGet(ctx, reqURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// parseCandles converts YF chart data to OHLCV bars, skipping null entries.
func parseCandles(result yfChartResult) []models.OHLCV {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	candles := make([]models.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		c := models.OHLCV{
			Timestamp: time.Unix(ts, 0),
			Close:     *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			c.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			c.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			c.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}

// buildMetadata assembles an AssetMetadata from a quoteSummary result.
func buildMetadata(symbol string, r yfQuoteSummaryResult) *models.AssetMetadata {
	meta := &models.AssetMetadata{Symbol: symbol}

	if r.Price != nil {
		meta.MarketCap = r.Price.MarketCap.Raw
		meta.Name = r.Price.LongName
		if meta.Name == "" {
			meta.Name = r.Price.ShortName
		}
	}
	if sd := r.SummaryDetail; sd != nil {
		meta.Volume24h = sd.Volume24Hr.Raw
		meta.CirculatingSupply = sd.CirculatingSupply.Raw
		meta.FiftyTwoWeekHigh = sd.FiftyTwoWeekHigh.Raw
		meta.FiftyTwoWeekLow = sd.FiftyTwoWeekLow.Raw
		if sd.MaxSupply != nil {
			v := sd.MaxSupply.Raw
			meta.MaxSupply = &v
		}
	}
	return meta
}
