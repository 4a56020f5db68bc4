// Package config handles configuration loading for CoinSight.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ProviderConfig holds market-data provider settings.
type ProviderConfig struct {
	BaseURL      string `mapstructure:"base_url"      yaml:"base_url"`      // Yahoo Finance query host
	LookbackDays int    `mapstructure:"lookback_days" yaml:"lookback_days"` // fixed analysis window
	CacheTTLSec  int    `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`
}

// NewsConfig holds headline retrieval settings.
type NewsConfig struct {
	PrimaryLimit  int    `mapstructure:"primary_limit"  yaml:"primary_limit"`  // max items from the primary source (5–7)
	FallbackLimit int    `mapstructure:"fallback_limit" yaml:"fallback_limit"` // max items appended from the fallback feed
	MinPrimary    int    `mapstructure:"min_primary"    yaml:"min_primary"`    // below this, the fallback kicks in
	Qualifier     string `mapstructure:"qualifier"      yaml:"qualifier"`      // fixed domain qualifier for the fallback query
	FallbackURL   string `mapstructure:"fallback_url"   yaml:"fallback_url"`   // Google News RSS host
}

// AnalysisConfig holds scoring pipeline settings.
type AnalysisConfig struct {
	SentimentThreshold float64 `mapstructure:"sentiment_threshold" yaml:"sentiment_threshold"` // Bullish/Bearish cutoff
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.coinsight/config.yaml (home directory)
//  3. /etc/coinsight/config.yaml (system)
//
// Environment variables override config file values.
// Format: COINSIGHT_<SECTION>_<KEY>, e.g., COINSIGHT_API_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".coinsight"))
	v.AddConfigPath("/etc/coinsight")

	v.SetEnvPrefix("COINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("COINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("provider.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("provider.lookback_days", 365)
	v.SetDefault("provider.cache_ttl_sec", 300) // 5 minutes

	// News defaults
	v.SetDefault("news.primary_limit", 6)
	v.SetDefault("news.fallback_limit", 5)
	v.SetDefault("news.min_primary", 2)
	v.SetDefault("news.qualifier", "crypto")
	v.SetDefault("news.fallback_url", "https://news.google.com")

	// Analysis defaults
	v.SetDefault("analysis.sentiment_threshold", 0.1)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
