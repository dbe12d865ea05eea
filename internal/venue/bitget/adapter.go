// Package bitget implements the Exchange Adapter for Bitget spot markets.
// No SDK for Bitget appears in the dependency pack, so this is a generic
// REST client built on internal/httpclient via internal/venue/restutil.
package bitget

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

const baseURL = "https://api.bitget.com"

type symbolInfo struct {
	Symbol        string `json:"symbol"`
	BaseCoin      string `json:"baseCoin"`
	QuoteCoin     string `json:"quoteCoin"`
	Status        string `json:"status"`
	MinTradeAmount string `json:"minTradeAmount"`
	MakerFeeRate  string `json:"makerFeeRate"`
	TakerFeeRate  string `json:"takerFeeRate"`
}

type symbolsResponse struct {
	Data []symbolInfo `json:"data"`
}

type tickerInfo struct {
	Symbol     string `json:"symbol"`
	LastPr     string `json:"lastPr"`
	BidPr      string `json:"bidPr"`
	AskPr      string `json:"askPr"`
	BaseVolume string `json:"baseVolume"`
	Change24h  string `json:"change24h"`
}

type tickerResponse struct {
	Data []tickerInfo `json:"data"`
}

type orderBookData struct {
	Asks [][]string `json:"asks"`
	Bids [][]string `json:"bids"`
}

type orderBookResponse struct {
	Data orderBookData `json:"data"`
}

// Adapter implements venue.Adapter for Bitget.
type Adapter struct {
	client         httpclient.Client
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[market.Symbol]market.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[market.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[market.OrderBook]
	log            logger.LoggerInterface
}

// New builds a Bitget adapter with the shared rate limit + breaker guard.
func New(log logger.LoggerInterface, requestsPerMinute int) (*Adapter, error) {
	client, err := restutil.NewClient("bitget", baseURL, venue.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client:         client,
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[market.Symbol]market.MarketMeta]("bitget.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[market.Ticker]("bitget.fetchTicker"),
		bookBreaker:    venue.NewBreaker[market.OrderBook]("bitget.fetchOrderBook"),
		log:            log,
	}, nil
}

func toBitgetSymbol(s market.Symbol) string {
	return s.Base() + s.Quote()
}

// LoadMarkets fetches all spot symbols and their fee metadata.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
		var body symbolsResponse
		resp, err := a.client.NewRequest().SetResult(&body).Get(ctx, "/api/v2/spot/public/symbols")
		if err != nil {
			return nil, fmt.Errorf("bitget: load markets: %w", err)
		}
		if resp.IsError() {
			return nil, restutil.HTTPError("bitget: load markets", resp)
		}
		out := make(map[market.Symbol]market.MarketMeta, len(body.Data))
		for _, s := range body.Data {
			sym, err := market.NewSymbol(s.BaseCoin, s.QuoteCoin)
			if err != nil {
				continue
			}
			meta := market.MarketMeta{
				Active: s.Status == "online",
				Spot:   true,
			}
			if v, err := decimal.NewFromString(s.MinTradeAmount); err == nil {
				meta.MinAmount = v
			}
			if v, err := decimal.NewFromString(s.MakerFeeRate); err == nil {
				meta.MakerFee = v
			}
			if v, err := decimal.NewFromString(s.TakerFeeRate); err == nil {
				meta.TakerFee = v
			}
			out[sym] = meta
		}
		return out, nil
	})
}

// FetchTicker returns the current price block for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (market.Ticker, error) {
		var body tickerResponse
		resp, err := a.client.NewRequest().
			SetQueryParam("symbol", toBitgetSymbol(symbol)).
			SetResult(&body).
			Get(ctx, "/api/v2/spot/market/tickers")
		if err != nil {
			return market.Ticker{}, fmt.Errorf("bitget: fetch ticker: %w", err)
		}
		if resp.IsError() || len(body.Data) == 0 {
			return market.Ticker{}, restutil.HTTPError("bitget: fetch ticker", resp)
		}
		t := body.Data[0]
		last, _ := decimal.NewFromString(t.LastPr)
		bid, _ := decimal.NewFromString(t.BidPr)
		ask, _ := decimal.NewFromString(t.AskPr)
		volume, _ := decimal.NewFromString(t.BaseVolume)
		changePct, _ := decimal.NewFromString(t.Change24h)
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
		var body orderBookResponse
		resp, err := a.client.NewRequest().
			SetQueryParam("symbol", toBitgetSymbol(symbol)).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			SetResult(&body).
			Get(ctx, "/api/v2/spot/market/orderbook")
		if err != nil {
			return market.OrderBook{}, fmt.Errorf("bitget: fetch order book: %w", err)
		}
		if resp.IsError() {
			return market.OrderBook{}, restutil.HTTPError("bitget: fetch order book", resp)
		}
		asks, err := venue.ParseLevels(body.Data.Asks, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		bids, err := venue.ParseLevels(body.Data.Bids, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		return market.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

var _ venue.Adapter = (*Adapter)(nil)
