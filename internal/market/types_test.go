package market

import "testing"

func TestNewSymbol_NormalizesAndValidates(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		quote   string
		want    Symbol
		wantErr bool
	}{
		{name: "lowercase_normalized", base: "btc", quote: "usdt", want: "BTC/USDT"},
		{name: "trims_whitespace", base: " eth ", quote: " usdt ", want: "ETH/USDT"},
		{name: "empty_base_rejected", base: "", quote: "USDT", wantErr: true},
		{name: "same_base_quote_rejected", base: "USDT", quote: "USDT", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSymbol(tt.base, tt.quote)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got symbol %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbol_IsUSDTQuoted(t *testing.T) {
	btc, _ := NewSymbol("BTC", "USDT")
	ltc, _ := NewSymbol("LTC", "BTC")
	if !btc.IsUSDTQuoted() {
		t.Fatal("expected BTC/USDT to be USDT-quoted")
	}
	if ltc.IsUSDTQuoted() {
		t.Fatal("expected LTC/BTC to not be USDT-quoted")
	}
}

func TestOrderBook_BestBidBestAsk_EmptySides(t *testing.T) {
	var ob OrderBook
	if _, ok := ob.BestBid(); ok {
		t.Fatal("expected BestBid to report false on an empty book")
	}
	if _, ok := ob.BestAsk(); ok {
		t.Fatal("expected BestAsk to report false on an empty book")
	}
}
