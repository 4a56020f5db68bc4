// Package api provides the HTTP REST API server for CoinSight.
//
// It exposes confidence analysis, chart data and news endpoints plus a
// WebSocket hub that announces completed analyses to dashboard clients.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rahulsm/coinsight/internal/analysis/sentiment"
	"github.com/rahulsm/coinsight/internal/analysis/technical"
	"github.com/rahulsm/coinsight/internal/analyzer"
	"github.com/rahulsm/coinsight/internal/config"
	"github.com/rahulsm/coinsight/internal/datasource"
	"github.com/rahulsm/coinsight/pkg/models"
	"github.com/rahulsm/coinsight/pkg/utils"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	market   analyzer.MarketSource
	news     analyzer.HeadlineProvider
	wsHub    *WSHub
	log      zerolog.Logger
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, log zerolog.Logger) *Server {
	market := datasource.NewYFinance(
		cfg.Provider.BaseURL,
		time.Duration(cfg.Provider.CacheTTLSec)*time.Second,
		log,
	)
	news := datasource.NewNews(market, datasource.NewsOptions{
		PrimaryLimit:  cfg.News.PrimaryLimit,
		FallbackLimit: cfg.News.FallbackLimit,
		MinPrimary:    cfg.News.MinPrimary,
		Qualifier:     cfg.News.Qualifier,
		FallbackURL:   cfg.News.FallbackURL,
	}, log)
	a := analyzer.New(market, news, analyzer.Options{
		LookbackDays:       cfg.Provider.LookbackDays,
		SentimentThreshold: cfg.Analysis.SentimentThreshold,
	}, log)

	srv := &Server{
		cfg:      cfg,
		analyzer: a,
		market:   market,
		news:     news,
		wsHub:    NewWSHub(log),
		log:      log,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.Info().Str("addr", addr).Msg("API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-done
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/ohlcv/{symbol}", s.handleOHLCV)
		r.Get("/news/{symbol}", s.handleNews)
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Symbol string `json:"symbol"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.Symbol)
	if err != nil {
		status, msg := classifyAnalysisError(err)
		writeError(w, status, msg)
		return
	}

	s.wsHub.Broadcast(WSMessage{
		Type: "analysis_complete",
		Data: report.Result,
	})

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: report})
}

func (s *Server) handleOHLCV(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	symbol = utils.NormalizeSymbol(symbol)

	days := s.cfg.Provider.LookbackDays
	if d := r.URL.Query().Get("days"); d != "" {
		if _, err := fmt.Sscanf(d, "%d", &days); err != nil || days < 1 {
			days = s.cfg.Provider.LookbackDays
		}
	}

	candles, err := s.market.GetDailyHistory(r.Context(), symbol, days)
	if err != nil {
		status, msg := classifyAnalysisError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: models.ChartData{
			Candles:    candles,
			Indicators: technical.Series(candles),
		},
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	symbol = utils.NormalizeSymbol(symbol)

	items := s.news.GetHeadlines(r.Context(), symbol)
	snap := sentiment.Analyze(items, s.cfg.Analysis.SentimentThreshold)

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: snap})
}

// classifyAnalysisError maps pipeline failures onto HTTP statuses: unknown
// symbols read as 404, missing fundamentals as 422, the rest as 500.
func classifyAnalysisError(err error) (int, string) {
	var noData *datasource.ErrNoData
	if errors.As(err, &noData) {
		return http.StatusNotFound, noData.Error()
	}
	var insufficient *analyzer.ErrInsufficientData
	if errors.As(err, &insufficient) {
		return http.StatusUnprocessableEntity, insufficient.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}
