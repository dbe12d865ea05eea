package market

import (
	"context"
	"testing"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

type stubAdapter struct {
	markets map[Symbol]MarketMeta
	err     error
}

func (s *stubAdapter) LoadMarkets(ctx context.Context) (map[Symbol]MarketMeta, error) {
	return s.markets, s.err
}
func (s *stubAdapter) FetchTicker(ctx context.Context, symbol Symbol) (Ticker, error) {
	return Ticker{}, nil
}
func (s *stubAdapter) FetchOrderBook(ctx context.Context, symbol Symbol, limit int) (OrderBook, error) {
	return OrderBook{}, nil
}

func mustSymbol(t *testing.T, base, quote string) Symbol {
	t.Helper()
	sym, err := NewSymbol(base, quote)
	if err != nil {
		t.Fatalf("NewSymbol(%q, %q): %v", base, quote, err)
	}
	return sym
}

func TestUniverse_USDTSpotSymbols_FiltersInactiveAndNonSpot(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	eth := mustSymbol(t, "ETH", "USDT")
	ltcBtc := mustSymbol(t, "LTC", "BTC")

	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &stubAdapter{markets: map[Symbol]MarketMeta{
			btc:    {Active: true, Spot: true},
			eth:    {Active: false, Spot: true},
			ltcBtc: {Active: true, Spot: true},
		}},
	}
	cache := NewCache(adapters)
	universe := NewUniverse(cache, []venue.ID{venue.Binance})

	got := universe.USDTSpotSymbols(context.Background(), venue.Binance)
	if len(got) != 1 || got[0] != btc {
		t.Fatalf("expected only BTC/USDT, got %v", got)
	}
}

func TestUniverse_CommonUSDTSymbols_RequiresAtLeastTwoVenues(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	eth := mustSymbol(t, "ETH", "USDT")

	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &stubAdapter{markets: map[Symbol]MarketMeta{
			btc: {Active: true, Spot: true},
			eth: {Active: true, Spot: true},
		}},
		venue.KuCoin: &stubAdapter{markets: map[Symbol]MarketMeta{
			btc: {Active: true, Spot: true},
		}},
	}
	cache := NewCache(adapters)
	universe := NewUniverse(cache, []venue.ID{venue.Binance, venue.KuCoin})

	got := universe.CommonUSDTSymbols(context.Background())
	if len(got) != 1 || got[0] != btc {
		t.Fatalf("expected only BTC/USDT to be common, got %v", got)
	}
}

func TestUniverse_EmptyUniverseIsValid(t *testing.T) {
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &stubAdapter{markets: map[Symbol]MarketMeta{}},
	}
	cache := NewCache(adapters)
	universe := NewUniverse(cache, []venue.ID{venue.Binance})

	got := universe.CommonUSDTSymbols(context.Background())
	if got == nil {
		t.Fatal("expected a non-nil empty slice, not a fabricated symbol set")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty universe, got %v", got)
	}
}

func TestCache_LoadsOnce(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	calls := 0
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &countingAdapter{
			markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: true}},
			calls:   &calls,
		},
	}
	cache := NewCache(adapters)
	ctx := context.Background()

	cache.Markets(ctx, venue.Binance)
	cache.Markets(ctx, venue.Binance)
	cache.Markets(ctx, venue.Binance)

	if calls != 1 {
		t.Fatalf("expected loadMarkets to run exactly once, ran %d times", calls)
	}
}

type countingAdapter struct {
	markets map[Symbol]MarketMeta
	calls   *int
}

func (c *countingAdapter) LoadMarkets(ctx context.Context) (map[Symbol]MarketMeta, error) {
	*c.calls++
	return c.markets, nil
}
func (c *countingAdapter) FetchTicker(ctx context.Context, symbol Symbol) (Ticker, error) {
	return Ticker{}, nil
}
func (c *countingAdapter) FetchOrderBook(ctx context.Context, symbol Symbol, limit int) (OrderBook, error) {
	return OrderBook{}, nil
}
