// Package config provides configuration loading and validation for the
// scanner, following the venue registry and key names of the ConfigSpec.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// SupportedVenues is the constant venue registry (spec §6). New venues are
// added here and by providing an Exchange Adapter implementation.
var SupportedVenues = []string{"binance", "kucoin", "gate", "bitget", "mexc", "bybit"}

// Config holds all application configuration.
type Config struct {
	App       AppConfig              `mapstructure:"app"`
	Scan      ScanConfig             `mapstructure:"scan"`
	Venues    map[string]VenueConfig `mapstructure:"-"`
	Telemetry TelemetryConfig        `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ScanConfig holds the ConfigSpec fields from spec §6.
type ScanConfig struct {
	TradeSizeUSDT   float64  `mapstructure:"trade_size_usdt"`
	MinRawSpreadPct float64  `mapstructure:"min_raw_spread_pct"`
	MinTradeUSDT    float64  `mapstructure:"min_trade_usdt"`
	IntervalMs      int      `mapstructure:"scan_interval_ms"`
	BatchSize       int      `mapstructure:"scan_batch_size"`
	Venues          []string `mapstructure:"scan_venues"`
	Debug           bool     `mapstructure:"arb_debug"`
}

// TradeSizeUSDTDecimal returns the trade size as a decimal.Decimal.
func (c *ScanConfig) TradeSizeUSDTDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TradeSizeUSDT)
}

// MinRawSpreadPctDecimal returns the minimum raw spread percent as a decimal.Decimal.
func (c *ScanConfig) MinRawSpreadPctDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinRawSpreadPct)
}

// MinTradeUSDTDecimal returns the notional floor as a decimal.Decimal.
func (c *ScanConfig) MinTradeUSDTDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinTradeUSDT)
}

// Interval returns the tick cadence as a time.Duration.
func (c *ScanConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// VenueConfig holds optional credentials for a single venue. Read-only
// endpoints (loadMarkets, fetchTicker, fetchOrderBook) work without them.
type VenueConfig struct {
	APIKey     string
	Secret     string
	Passphrase string
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from an optional file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("ARB")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Venues = loadVenueConfigs(v)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "ARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ARB_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ARB_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("scan.trade_size_usdt", "TRADE_SIZE_USDT")
	v.BindEnv("scan.min_raw_spread_pct", "MIN_RAW_SPREAD_PCT")
	v.BindEnv("scan.min_trade_usdt", "MIN_TRADE_USDT")
	v.BindEnv("scan.scan_interval_ms", "SCAN_INTERVAL_MS")
	v.BindEnv("scan.scan_batch_size", "SCAN_BATCH_SIZE")
	v.BindEnv("scan.scan_venues", "SCAN_VENUES")
	v.BindEnv("scan.arb_debug", "ARB_DEBUG")

	v.BindEnv("telemetry.enabled", "ARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	for _, venue := range SupportedVenues {
		upper := strings.ToUpper(venue)
		v.BindEnv("venue."+venue+".api_key", upper+"_API_KEY")
		v.BindEnv("venue."+venue+".secret", upper+"_SECRET")
		v.BindEnv("venue."+venue+".passphrase", upper+"_PASSPHRASE")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "arbitrage-scanner")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("scan.trade_size_usdt", 25.0)
	v.SetDefault("scan.min_raw_spread_pct", 0.0)
	v.SetDefault("scan.min_trade_usdt", 1.0)
	v.SetDefault("scan.scan_interval_ms", 3000)
	v.SetDefault("scan.scan_batch_size", 30)
	v.SetDefault("scan.scan_venues", SupportedVenues)
	v.SetDefault("scan.arb_debug", false)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "arbitrage-scanner")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

func loadVenueConfigs(v *viper.Viper) map[string]VenueConfig {
	out := make(map[string]VenueConfig, len(SupportedVenues))
	for _, venue := range SupportedVenues {
		out[venue] = VenueConfig{
			APIKey:     v.GetString("venue." + venue + ".api_key"),
			Secret:     v.GetString("venue." + venue + ".secret"),
			Passphrase: v.GetString("venue." + venue + ".passphrase"),
		}
	}
	return out
}

// Validate validates the configuration. Only startup misconfiguration
// (spec §7) is fatal: an empty venue registry or non-positive numeric knobs.
func (c *Config) Validate() error {
	if len(c.Scan.Venues) == 0 {
		return fmt.Errorf("scan.scan_venues cannot be empty")
	}
	for _, venue := range c.Scan.Venues {
		if !isSupported(venue) {
			return fmt.Errorf("scan.scan_venues: %q is not a supported venue", venue)
		}
	}
	if c.Scan.TradeSizeUSDT <= 0 {
		return fmt.Errorf("scan.trade_size_usdt must be > 0")
	}
	if c.Scan.MinTradeUSDT <= 0 {
		return fmt.Errorf("scan.min_trade_usdt must be > 0")
	}
	if c.Scan.MinRawSpreadPct < 0 {
		return fmt.Errorf("scan.min_raw_spread_pct must be >= 0")
	}
	if c.Scan.IntervalMs <= 0 {
		return fmt.Errorf("scan.scan_interval_ms must be > 0")
	}
	if c.Scan.BatchSize <= 0 {
		return fmt.Errorf("scan.scan_batch_size must be > 0")
	}
	return nil
}

func isSupported(venue string) bool {
	for _, v := range SupportedVenues {
		if v == venue {
			return true
		}
	}
	return false
}
