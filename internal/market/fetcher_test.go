package market

import (
	"context"
	"errors"
	"testing"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/apperror"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
	"github.com/shopspring/decimal"
)

type fixedAdapter struct {
	markets  map[Symbol]MarketMeta
	ticker   Ticker
	tickErr  error
	book     OrderBook
	bookErr  error
}

func (a *fixedAdapter) LoadMarkets(ctx context.Context) (map[Symbol]MarketMeta, error) {
	return a.markets, nil
}
func (a *fixedAdapter) FetchTicker(ctx context.Context, symbol Symbol) (Ticker, error) {
	return a.ticker, a.tickErr
}
func (a *fixedAdapter) FetchOrderBook(ctx context.Context, symbol Symbol, limit int) (OrderBook, error) {
	return a.book, a.bookErr
}

func TestFetcher_UnsupportedVenue(t *testing.T) {
	fetcher := NewFetcher(NewCache(nil), map[venue.ID]venue.Adapter{}, nil)
	_, err := fetcher.Fetch(context.Background(), venue.ID("nope"), Symbol("BTC/USDT"))
	if apperror.GetCode(err) != apperror.CodeUnsupportedVenue {
		t.Fatalf("expected CodeUnsupportedVenue, got %v", err)
	}
	if !apperror.IsCategory(err, apperror.CategoryConfigurational) {
		t.Fatalf("expected CategoryConfigurational, got %v", err)
	}
}

func TestFetcher_MarketsUnavailable(t *testing.T) {
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{markets: map[Symbol]MarketMeta{}},
	}
	fetcher := NewFetcher(NewCache(adapters), adapters, nil)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, Symbol("BTC/USDT"))
	if apperror.GetCode(err) != apperror.CodeMarketsUnavailable {
		t.Fatalf("expected CodeMarketsUnavailable, got %v", err)
	}
}

func TestFetcher_UnknownSymbol(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: true}}},
	}
	fetcher := NewFetcher(NewCache(adapters), adapters, nil)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, mustSymbol(t, "ETH", "USDT"))
	if apperror.GetCode(err) != apperror.CodeUnknownSymbol {
		t.Fatalf("expected CodeUnknownSymbol, got %v", err)
	}
}

func TestFetcher_InactiveMarket(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{markets: map[Symbol]MarketMeta{btc: {Active: false, Spot: true}}},
	}
	fetcher := NewFetcher(NewCache(adapters), adapters, nil)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, btc)
	if apperror.GetCode(err) != apperror.CodeInactiveMarket {
		t.Fatalf("expected CodeInactiveMarket, got %v", err)
	}
}

func TestFetcher_NotSpot(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: false}}},
	}
	fetcher := NewFetcher(NewCache(adapters), adapters, nil)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, btc)
	if apperror.GetCode(err) != apperror.CodeNotSpot {
		t.Fatalf("expected CodeNotSpot, got %v", err)
	}
}

func TestFetcher_TickerUnavailable_RecordsUnhealthyStatus(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	boom := errors.New("boom")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{
			markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: true}},
			tickErr: boom,
		},
	}
	statuses := venue.NewStatusTracker()
	fetcher := NewFetcher(NewCache(adapters), adapters, statuses)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, btc)
	if apperror.GetCode(err) != apperror.CodeTickerUnavailable {
		t.Fatalf("expected CodeTickerUnavailable, got %v", err)
	}
	if !apperror.IsCategory(err, apperror.CategoryTransient) {
		t.Fatalf("expected CategoryTransient, got %v", err)
	}
	status, ok := statuses.Get(venue.Binance)
	if !ok || status.Healthy {
		t.Fatalf("expected an unhealthy recorded status, got %+v (ok=%v)", status, ok)
	}
}

func TestFetcher_OrderBookUnavailable(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	boom := errors.New("boom")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{
			markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: true}},
			bookErr: boom,
		},
	}
	fetcher := NewFetcher(NewCache(adapters), adapters, nil)

	_, err := fetcher.Fetch(context.Background(), venue.Binance, btc)
	if apperror.GetCode(err) != apperror.CodeOrderBookUnavailable {
		t.Fatalf("expected CodeOrderBookUnavailable, got %v", err)
	}
}

func TestFetcher_Success_RecordsHealthyStatus(t *testing.T) {
	btc := mustSymbol(t, "BTC", "USDT")
	adapters := map[venue.ID]venue.Adapter{
		venue.Binance: &fixedAdapter{
			markets: map[Symbol]MarketMeta{btc: {Active: true, Spot: true, MakerFee: decimal.Zero, TakerFee: decimal.Zero}},
			ticker:  Ticker{Bid: decimal.Zero, Ask: decimal.Zero},
			book:    OrderBook{},
		},
	}
	statuses := venue.NewStatusTracker()
	fetcher := NewFetcher(NewCache(adapters), adapters, statuses)

	snap, err := fetcher.Fetch(context.Background(), venue.Binance, btc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Symbol != btc || snap.Venue != string(venue.Binance) {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	status, ok := statuses.Get(venue.Binance)
	if !ok || !status.Healthy {
		t.Fatalf("expected a healthy recorded status, got %+v (ok=%v)", status, ok)
	}
}
