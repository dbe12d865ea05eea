// Package gate implements the Exchange Adapter for Gate.io spot markets.
// No SDK for Gate.io appears anywhere in the dependency pack, so this
// adapter is a generic REST client built on internal/httpclient via
// internal/venue/restutil.
package gate

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

const baseURL = "https://api.gateio.ws/api/v4"

type currencyPair struct {
	ID            string `json:"id"`
	Base          string `json:"base"`
	Quote         string `json:"quote"`
	TradeStatus   string `json:"trade_status"`
	MinBaseAmount string `json:"min_base_amount"`
	MinQuoteAmount string `json:"min_quote_amount"`
	Precision     string `json:"precision"`
	AmountPrecision string `json:"amount_precision"`
}

type ticker struct {
	CurrencyPair     string `json:"currency_pair"`
	Last             string `json:"last"`
	LowestAsk        string `json:"lowest_ask"`
	HighestBid       string `json:"highest_bid"`
	ChangePercentage string `json:"change_percentage"`
	BaseVolume       string `json:"base_volume"`
}

type orderBook struct {
	Asks [][]string `json:"asks"`
	Bids [][]string `json:"bids"`
}

// Adapter implements venue.Adapter for Gate.io.
type Adapter struct {
	client         httpclient.Client
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[market.Symbol]market.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[market.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[market.OrderBook]
	log            logger.LoggerInterface
}

// New builds a Gate.io adapter with the shared rate limit + breaker guard.
func New(log logger.LoggerInterface, requestsPerMinute int) (*Adapter, error) {
	client, err := restutil.NewClient("gate", baseURL, venue.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client:         client,
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[market.Symbol]market.MarketMeta]("gate.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[market.Ticker]("gate.fetchTicker"),
		bookBreaker:    venue.NewBreaker[market.OrderBook]("gate.fetchOrderBook"),
		log:            log,
	}, nil
}

func toGateSymbol(s market.Symbol) string {
	return fmt.Sprintf("%s_%s", s.Base(), s.Quote())
}

// defaultTakerFee is Gate.io's standard non-VIP spot taker rate, applied
// since the public currency_pairs endpoint doesn't return per-pair fees.
var defaultTakerFee = decimal.NewFromFloat(0.001)

// LoadMarkets fetches all spot currency pairs and their limit metadata.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
		var pairs []currencyPair
		resp, err := a.client.NewRequest().SetResult(&pairs).Get(ctx, "/spot/currency_pairs")
		if err != nil {
			return nil, fmt.Errorf("gate: load markets: %w", err)
		}
		if resp.IsError() {
			return nil, restutil.HTTPError("gate: load markets", resp)
		}
		out := make(map[market.Symbol]market.MarketMeta, len(pairs))
		for _, p := range pairs {
			sym, err := market.NewSymbol(p.Base, p.Quote)
			if err != nil {
				continue
			}
			meta := market.MarketMeta{
				Active:   p.TradeStatus == "tradable",
				Spot:     true,
				TakerFee: defaultTakerFee,
			}
			if v, err := decimal.NewFromString(p.MinBaseAmount); err == nil {
				meta.MinAmount = v
			}
			if v, err := decimal.NewFromString(p.MinQuoteAmount); err == nil {
				meta.MinCost = v
			}
			out[sym] = meta
		}
		return out, nil
	})
}

// FetchTicker returns the current price block for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (market.Ticker, error) {
		var tickers []ticker
		resp, err := a.client.NewRequest().
			SetQueryParam("currency_pair", toGateSymbol(symbol)).
			SetResult(&tickers).
			Get(ctx, "/spot/tickers")
		if err != nil {
			return market.Ticker{}, fmt.Errorf("gate: fetch ticker: %w", err)
		}
		if resp.IsError() || len(tickers) == 0 {
			return market.Ticker{}, restutil.HTTPError("gate: fetch ticker", resp)
		}
		t := tickers[0]
		last, _ := decimal.NewFromString(t.Last)
		bid, _ := decimal.NewFromString(t.HighestBid)
		ask, _ := decimal.NewFromString(t.LowestAsk)
		volume, _ := decimal.NewFromString(t.BaseVolume)
		changePct, _ := decimal.NewFromString(t.ChangePercentage)
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
		var raw orderBook
		resp, err := a.client.NewRequest().
			SetQueryParam("currency_pair", toGateSymbol(symbol)).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			SetResult(&raw).
			Get(ctx, "/spot/order_book")
		if err != nil {
			return market.OrderBook{}, fmt.Errorf("gate: fetch order book: %w", err)
		}
		if resp.IsError() {
			return market.OrderBook{}, restutil.HTTPError("gate: fetch order book", resp)
		}
		asks, err := venue.ParseLevels(raw.Asks, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		bids, err := venue.ParseLevels(raw.Bids, limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		return market.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

var _ venue.Adapter = (*Adapter)(nil)
