// Package mexc implements the Exchange Adapter for MEXC spot markets.
// No SDK for MEXC appears in the dependency pack, so this is a generic
// REST client built on internal/httpclient via internal/venue/restutil.
// MEXC's spot v3 API is wire-compatible with Binance's, so the response
// shapes mirror it.
package mexc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/httpclient"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/restutil"
)

const baseURL = "https://api.mexc.com"

type exchangeInfoSymbol struct {
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Status     string `json:"status"`
	IsSpot     bool   `json:"isSpotTradingAllowed"`
}

type exchangeInfoResponse struct {
	Symbols []exchangeInfoSymbol `json:"symbols"`
}

type ticker24hr struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	BidPrice           string `json:"bidPrice"`
	AskPrice           string `json:"askPrice"`
	Volume             string `json:"volume"`
	PriceChangePercent string `json:"priceChangePercent"`
}

type depthResponse struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// Adapter implements venue.Adapter for MEXC.
type Adapter struct {
	client         httpclient.Client
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[market.Symbol]market.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[market.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[market.OrderBook]
	log            logger.LoggerInterface
}

// New builds a MEXC adapter with the shared rate limit + breaker guard.
func New(log logger.LoggerInterface, requestsPerMinute int) (*Adapter, error) {
	client, err := restutil.NewClient("mexc", baseURL, venue.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client:         client,
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[market.Symbol]market.MarketMeta]("mexc.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[market.Ticker]("mexc.fetchTicker"),
		bookBreaker:    venue.NewBreaker[market.OrderBook]("mexc.fetchOrderBook"),
		log:            log,
	}, nil
}

func toMEXCSymbol(s market.Symbol) string {
	return s.Base() + s.Quote()
}

// defaultTakerFee is MEXC's standard non-VIP spot taker rate, applied
// since exchangeInfo doesn't return per-symbol fees.
var defaultTakerFee = decimal.NewFromFloat(0.001)

// LoadMarkets fetches exchange info and derives active/spot flags per symbol.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
		var body exchangeInfoResponse
		resp, err := a.client.NewRequest().SetResult(&body).Get(ctx, "/api/v3/exchangeInfo")
		if err != nil {
			return nil, fmt.Errorf("mexc: load markets: %w", err)
		}
		if resp.IsError() {
			return nil, restutil.HTTPError("mexc: load markets", resp)
		}
		out := make(map[market.Symbol]market.MarketMeta, len(body.Symbols))
		for _, s := range body.Symbols {
			sym, err := market.NewSymbol(s.BaseAsset, s.QuoteAsset)
			if err != nil {
				continue
			}
			out[sym] = market.MarketMeta{
				Active:   s.Status == "1" || s.Status == "ENABLED" || s.Status == "TRADING",
				Spot:     s.IsSpot,
				TakerFee: defaultTakerFee,
			}
		}
		return out, nil
	})
}

// FetchTicker returns the current price block for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (market.Ticker, error) {
		var t ticker24hr
		resp, err := a.client.NewRequest().
			SetQueryParam("symbol", toMEXCSymbol(symbol)).
			SetResult(&t).
			Get(ctx, "/api/v3/ticker/24hr")
		if err != nil {
			return market.Ticker{}, fmt.Errorf("mexc: fetch ticker: %w", err)
		}
		if resp.IsError() {
			return market.Ticker{}, restutil.HTTPError("mexc: fetch ticker", resp)
		}
		last, _ := decimal.NewFromString(t.LastPrice)
		bid, _ := decimal.NewFromString(t.BidPrice)
		ask, _ := decimal.NewFromString(t.AskPrice)
		volume, _ := decimal.NewFromString(t.Volume)
		changePct, _ := decimal.NewFromString(t.PriceChangePercent)
		return market.Ticker{
			Last:      last,
			Bid:       bid,
			Ask:       ask,
			Spread:    ask.Sub(bid),
			Volume:    volume,
			ChangePct: changePct,
		}, nil
	})
}

// FetchOrderBook returns up to limit levels per side for symbol.
func (a *Adapter) FetchOrderBook(ctx context.Context, symbol market.Symbol, limit int) (market.OrderBook, error) {
	return venue.Guard(ctx, a.limiter, a.bookBreaker, func(ctx context.Context) (market.OrderBook, error) {
		var body depthResponse
		resp, err := a.client.NewRequest().
			SetQueryParam("symbol", toMEXCSymbol(symbol)).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			SetResult(&body).
			Get(ctx, "/api/v3/depth")
		if err != nil {
			return market.OrderBook{}, fmt.Errorf("mexc: fetch order book: %w", err)
		}
		if resp.IsError() {
			return market.OrderBook{}, restutil.HTTPError("mexc: fetch order book", resp)
		}
		asks, err := venue.ParseLevels(body.Asks, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		bids, err := venue.ParseLevels(body.Bids, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		return market.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

var _ venue.Adapter = (*Adapter)(nil)
