package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidate_RejectsUnsupportedVenue(t *testing.T) {
	cfg := &Config{
		Scan: ScanConfig{
			TradeSizeUSDT: 25,
			MinTradeUSDT:  1,
			IntervalMs:    3000,
			BatchSize:     30,
			Venues:        []string{"binance", "notreal"},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an unsupported venue to fail validation")
	}
}

func TestValidate_RejectsEmptyVenues(t *testing.T) {
	cfg := &Config{
		Scan: ScanConfig{
			TradeSizeUSDT: 25,
			MinTradeUSDT:  1,
			IntervalMs:    3000,
			BatchSize:     30,
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty scan venues to fail validation")
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	cfg := &Config{
		Scan: ScanConfig{
			TradeSizeUSDT: 25,
			MinTradeUSDT:  1,
			IntervalMs:    3000,
			BatchSize:     30,
			Venues:        SupportedVenues,
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default-shaped config to validate, got %v", err)
	}
}

func TestScanConfig_DecimalConversions(t *testing.T) {
	c := ScanConfig{TradeSizeUSDT: 25.5, MinRawSpreadPct: 0.1, MinTradeUSDT: 1}
	if !c.TradeSizeUSDTDecimal().Equal(decimal.NewFromFloat(25.5)) {
		t.Fatalf("unexpected trade size decimal: %s", c.TradeSizeUSDTDecimal())
	}
	if got, want := c.Interval().Milliseconds(), int64(0); got != want {
		t.Fatalf("expected zero-value IntervalMs to yield a zero duration, got %d", got)
	}
}
