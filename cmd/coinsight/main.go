// CoinSight: crypto confidence analyzer.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rahulsm/coinsight/api"
	"github.com/rahulsm/coinsight/internal/analyzer"
	"github.com/rahulsm/coinsight/internal/config"
	"github.com/rahulsm/coinsight/internal/datasource"
	"github.com/rahulsm/coinsight/pkg/models"
	"github.com/rahulsm/coinsight/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinsight",
	Short: "CoinSight: crypto confidence analyzer",
	Long: `CoinSight computes a 0-100 confidence score for a cryptocurrency by
combining technical (RSI/EMA trend), fundamental (liquidity, supply,
52-week range) and sentiment (news polarity) signals.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log = newLogger(cfg.Logging)
		api.Version = version
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLogger builds the process logger from the logging config.
func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if lc.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// newAnalyzer wires the analysis pipeline from the loaded config.
func newAnalyzer() *analyzer.Analyzer {
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
	return analyzer.New(market, news, analyzer.Options{
		LookbackDays:       cfg.Provider.LookbackDays,
		SentimentThreshold: cfg.Analysis.SentimentThreshold,
	}, log)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("CoinSight %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "Compute the confidence score for a cryptocurrency",
	Long:  "Fetch market data, fundamentals and news for a coin and print the full confidence breakdown.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		report, err := newAnalyzer().Analyze(ctx, args[0])
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := api.NewServer(cfg, log)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  CoinSight — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Printf("  Time (UTC):  %s\n", time.Now().UTC().Format(time.RFC1123))
		fmt.Println()
		fmt.Println("  Configuration:")
		fmt.Printf("    Market Data:   %s (lookback %dd, cache %ds)\n",
			providerHost(), cfg.Provider.LookbackDays, cfg.Provider.CacheTTLSec)
		fmt.Printf("    News:          primary %d / fallback %d (min %d)\n",
			cfg.News.PrimaryLimit, cfg.News.FallbackLimit, cfg.News.MinPrimary)
		fmt.Printf("    Sentiment:     ±%.2f neutral band\n", cfg.Analysis.SentimentThreshold)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func providerHost() string {
	if cfg.Provider.BaseURL != "" {
		return cfg.Provider.BaseURL
	}
	return datasource.DefaultYahooBaseURL
}

// --- Terminal dashboard ---

func printReport(report *models.AnalysisReport) {
	res := report.Result
	tech := res.Technical
	fund := res.Fundamental
	sent := res.Sentiment

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Printf("  %s — Confidence Score: %d/100\n", res.Symbol, res.Score)
	fmt.Printf("  Verdict: %s\n", res.Verdict)
	fmt.Println("═══════════════════════════════════════════════")

	fmt.Println("\n📊 Technical")
	fmt.Printf("  Price:       %s\n", utils.FormatUSD(tech.CurrentPrice))
	fmt.Printf("  RSI(14):     %.1f\n", tech.RSI)
	fmt.Printf("  EMA 50/200:  %s / %s\n", utils.FormatUSD(tech.EMA50), utils.FormatUSD(tech.EMA200))
	fmt.Printf("  Trend:       %s\n", tech.Trend)
	fmt.Printf("  Support:     %s   Resistance: %s\n",
		utils.FormatUSD(tech.Support), utils.FormatUSD(tech.Resistance))

	fmt.Println("\n📈 Fundamental")
	fmt.Printf("  Market Cap:  %s\n", utils.FormatUSD(fund.MarketCap))
	fmt.Printf("  Volume 24h:  %s (%.2f%% of mcap)\n",
		utils.FormatUSD(fund.Volume), fund.VolumeMcapRatio*100)
	fmt.Printf("  Supply:      %s", utils.FormatCount(fund.CirculatingSupply))
	if fund.SupplyPercent != nil {
		fmt.Printf(" / %s (%.1f%% issued)", utils.FormatCount(*fund.MaxSupply), *fund.SupplyPercent)
	} else {
		fmt.Printf(" (uncapped)")
	}
	fmt.Println()
	fmt.Printf("  52w Range:   %s - %s (at %.0f%%)\n",
		utils.FormatUSD(fund.YearLow), utils.FormatUSD(fund.YearHigh), fund.RangePosition)

	fmt.Println("\n📰 Sentiment")
	fmt.Printf("  Score:       %+.2f (%s)\n", sent.Score, sent.Category)
	for _, item := range sent.Items {
		marker := "·"
		if item.Polarity > 0 {
			marker = "+"
		} else if item.Polarity < 0 {
			marker = "-"
		}
		line := item.Title
		if item.Publisher != "" {
			line = fmt.Sprintf("%s (%s)", line, item.Publisher)
		}
		fmt.Printf("  %s %s\n", marker, line)
	}
	if len(sent.Items) == 0 {
		fmt.Println("  no recent headlines found")
	}

	fmt.Printf("\nGenerated at %s\n", res.GeneratedAt.Format(time.RFC1123))
}
