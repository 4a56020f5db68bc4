package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahulsm/coinsight/internal/analyzer"
	"github.com/rahulsm/coinsight/internal/config"
	"github.com/rahulsm/coinsight/internal/datasource"
	"github.com/rahulsm/coinsight/pkg/models"
)

func f64(v float64) *float64 { return &v }

type stubMarket struct {
	candles    []models.OHLCV
	candlesErr error
	meta       *models.AssetMetadata
	metaErr    error
}

func (m *stubMarket) GetDailyHistory(ctx context.Context, symbol string, lookbackDays int) ([]models.OHLCV, error) {
	return m.candles, m.candlesErr
}

func (m *stubMarket) GetAssetMetadata(ctx context.Context, symbol string) (*models.AssetMetadata, error) {
	return m.meta, m.metaErr
}

type stubNews struct {
	items []models.NewsItem
}

func (n *stubNews) GetHeadlines(ctx context.Context, symbol string) []models.NewsItem {
	return n.items
}

func rampCandles(n int) []models.OHLCV {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.OHLCV, n)
	for i := range candles {
		c := 100 + float64(i)
		candles[i] = models.OHLCV{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c * 1.01, Low: c * 0.99, Close: c,
			Volume: 1e6,
		}
	}
	return candles
}

func testConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{LookbackDays: 365, CacheTTLSec: 300},
		News:     config.NewsConfig{PrimaryLimit: 6, FallbackLimit: 5, MinPrimary: 2},
		Analysis: config.AnalysisConfig{SentimentThreshold: 0.1},
		API:      config.APIConfig{Port: 8080},
	}
}

// newTestServer wires a server over stub sources, bypassing NewServer's
// real Yahoo-backed construction.
func newTestServer(market *stubMarket, news *stubNews) *Server {
	cfg := testConfig()
	log := zerolog.Nop()
	srv := &Server{
		cfg: cfg,
		analyzer: analyzer.New(market, news, analyzer.Options{
			LookbackDays:       cfg.Provider.LookbackDays,
			SentimentThreshold: cfg.Analysis.SentimentThreshold,
		}, log),
		market: market,
		news:   news,
		wsHub:  NewWSHub(log),
		log:    log,
	}
	srv.router = srv.buildRouter()
	go srv.wsHub.Run()
	return srv
}

func healthyMarket() *stubMarket {
	return &stubMarket{
		candles: rampCandles(250),
		meta: &models.AssetMetadata{
			Symbol:            "BTC-USD",
			MarketCap:         2e12,
			Volume24h:         1e11,
			CirculatingSupply: 19.7e6,
			MaxSupply:         f64(21e6),
			FiftyTwoWeekHigh:  400,
			FiftyTwoWeekLow:   90,
		},
	}
}

func doRequest(t *testing.T, srv *Server, method, path string, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{})
	rec, resp := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{items: []models.NewsItem{
		{Title: "Bitcoin surges to record high", Link: "https://example.com/1"},
	}})

	rec, resp := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", `{"symbol":"btc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}

	data, _ := json.Marshal(resp.Data)
	var report models.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("cannot decode report: %v", err)
	}
	if report.Result.Symbol != "BTC-USD" {
		t.Errorf("symbol = %q, want BTC-USD", report.Result.Symbol)
	}
	if report.Result.Score < 0 || report.Result.Score > 100 {
		t.Errorf("score out of range: %d", report.Result.Score)
	}
	if len(report.Chart.Candles) != 250 {
		t.Errorf("chart candles = %d, want 250", len(report.Chart.Candles))
	}
}

func TestAnalyzeValidation(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "not json"},
		{"missing symbol", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp.Success {
				t.Error("expected error envelope")
			}
		})
	}
}

func TestAnalyzeUnknownSymbol(t *testing.T) {
	market := &stubMarket{candlesErr: &datasource.ErrNoData{Symbol: "NOPE-USD"}}
	srv := newTestServer(market, &stubNews{})

	rec, resp := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", `{"symbol":"NOPE"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(resp.Error, "NOPE-USD") {
		t.Errorf("error should name the symbol, got %q", resp.Error)
	}
}

func TestAnalyzeMissingFundamentals(t *testing.T) {
	market := &stubMarket{candles: rampCandles(250), metaErr: context.DeadlineExceeded}
	srv := newTestServer(market, &stubNews{})

	rec, _ := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", `{"symbol":"BTC"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestOHLCVEndpoint(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{})

	rec, resp := doRequest(t, srv, http.MethodGet, "/api/v1/ohlcv/BTC?days=30", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(resp.Data)
	var chart models.ChartData
	if err := json.Unmarshal(data, &chart); err != nil {
		t.Fatalf("cannot decode chart: %v", err)
	}
	if len(chart.Candles) == 0 {
		t.Error("expected candles")
	}
	if len(chart.Indicators.RSI) != len(chart.Candles) {
		t.Error("indicator series must align with candles")
	}
}

func TestNewsEndpoint(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{items: []models.NewsItem{
		{Title: "Exchange hack causes crash", Link: "https://example.com/1"},
	}})

	rec, resp := doRequest(t, srv, http.MethodGet, "/api/v1/news/BTC", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(resp.Data)
	var snap models.SentimentSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("cannot decode snapshot: %v", err)
	}
	if snap.Category != models.SentimentBearish {
		t.Errorf("category = %v, want Bearish", snap.Category)
	}
	if len(snap.Items) != 1 {
		t.Errorf("items = %d, want 1", len(snap.Items))
	}
}

func TestNewsEndpointNoData(t *testing.T) {
	srv := newTestServer(healthyMarket(), &stubNews{})

	_, resp := doRequest(t, srv, http.MethodGet, "/api/v1/news/BTC", "")
	data, _ := json.Marshal(resp.Data)
	var snap models.SentimentSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("cannot decode snapshot: %v", err)
	}
	if snap.Category != models.SentimentNoData {
		t.Errorf("category = %v, want no-data neutral", snap.Category)
	}
}
