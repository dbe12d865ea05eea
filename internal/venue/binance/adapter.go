// Package binance implements the Exchange Adapter for Binance spot markets
// on top of the real spot REST client, adshao/go-binance/v2 -- the SDK the
// wider example pack (rahjooh-CryptoTrade) already depends on for Binance,
// used here for the spot loadMarkets/fetchTicker/fetchOrderBook surface
// this scanner needs rather than that repo's futures websocket streams.
package binance

import (
	"context"
	"fmt"

	binancesdk "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// binance rate-limit codes: -1003 TOO_MANY_REQUESTS, -1015 TOO_MANY_ORDERS.
// classifyErr maps those onto venue.ErrRateLimited so Guard's retry (spec
// §4.1) actually fires instead of the pair dropping on the first 429.
func classifyErr(op string, err error) error {
	if apiErr, ok := common.IsAPIError(err); ok && (apiErr.Code == -1003 || apiErr.Code == -1015) {
		return fmt.Errorf("binance: %s: %w", op, venue.ErrRateLimited)
	}
	return fmt.Errorf("binance: %s: %w", op, err)
}

// Adapter implements venue.Adapter for Binance spot.
type Adapter struct {
	client         *binancesdk.Client
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[market.Symbol]market.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[market.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[market.OrderBook]
	log            logger.LoggerInterface
}

// New builds a Binance adapter. apiKey/secret are optional: read-only spot
// market data endpoints do not require authentication.
func New(log logger.LoggerInterface, apiKey, secret string, requestsPerMinute int) *Adapter {
	return &Adapter{
		client:         binancesdk.NewClient(apiKey, secret),
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[market.Symbol]market.MarketMeta]("binance.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[market.Ticker]("binance.fetchTicker"),
		bookBreaker:    venue.NewBreaker[market.OrderBook]("binance.fetchOrderBook"),
		log:            log,
	}
}

func toBinanceSymbol(s market.Symbol) string {
	return s.Base() + s.Quote()
}

// defaultTakerFee is Binance's standard non-VIP spot taker rate, applied
// since exchangeInfo doesn't return per-symbol fees.
var defaultTakerFee = decimal.NewFromFloat(0.001)

// LoadMarkets fetches exchange info and derives MarketMeta per symbol,
// including the LOT_SIZE and MIN_NOTIONAL/NOTIONAL filters as limits.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
		info, err := a.client.NewExchangeInfoService().Do(ctx)
		if err != nil {
			return nil, classifyErr("load markets", err)
		}
		out := make(map[market.Symbol]market.MarketMeta, len(info.Symbols))
		for _, s := range info.Symbols {
			sym, err := market.NewSymbol(s.BaseAsset, s.QuoteAsset)
			if err != nil {
				continue
			}
			meta := market.MarketMeta{
				Active:   s.Status == "TRADING",
				Spot:     s.IsSpotTradingAllowed,
				TakerFee: defaultTakerFee,
			}
			for _, f := range s.Filters {
				switch f["filterType"] {
				case "LOT_SIZE":
					if v, ok := f["minQty"].(string); ok {
						meta.MinAmount, _ = decimal.NewFromString(v)
					}
					if v, ok := f["maxQty"].(string); ok {
						meta.MaxAmount, _ = decimal.NewFromString(v)
					}
				case "MIN_NOTIONAL", "NOTIONAL":
					if v, ok := f["minNotional"].(string); ok {
						meta.MinCost, _ = decimal.NewFromString(v)
					}
				}
			}
			out[sym] = meta
		}
		return out, nil
	})
}

// FetchTicker returns the current 24h ticker for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (market.Ticker, error) {
		sym := toBinanceSymbol(symbol)
		stats, err := a.client.NewListPriceChangeStatsService().Symbol(sym).Do(ctx)
		if err != nil {
			return market.Ticker{}, classifyErr("fetch ticker", err)
		}
		if len(stats) == 0 {
			return market.Ticker{}, fmt.Errorf("binance: fetch ticker: no data for %s", sym)
		}
		s := stats[0]
		last, _ := decimal.NewFromString(s.LastPrice)
		bid, _ := decimal.NewFromString(s.BidPrice)
		ask, _ := decimal.NewFromString(s.AskPrice)
		volume, _ := decimal.NewFromString(s.Volume)
		changePct, _ := decimal.NewFromString(s.PriceChangePercent)
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
		depth, err := a.client.NewDepthService().Symbol(toBinanceSymbol(symbol)).Limit(limit).Do(ctx)
		if err != nil {
			return market.OrderBook{}, classifyErr("fetch order book", err)
		}
		bids := make([]market.Level, 0, len(depth.Bids))
		for _, b := range depth.Bids {
			price, err1 := decimal.NewFromString(b.Price)
			amount, err2 := decimal.NewFromString(b.Quantity)
			if err1 != nil || err2 != nil || amount.IsZero() {
				continue
			}
			bids = append(bids, market.Level{Price: price, Amount: amount})
		}
		asks := make([]market.Level, 0, len(depth.Asks))
		for _, ask := range depth.Asks {
			price, err1 := decimal.NewFromString(ask.Price)
			amount, err2 := decimal.NewFromString(ask.Quantity)
			if err1 != nil || err2 != nil || amount.IsZero() {
				continue
			}
			asks = append(asks, market.Level{Price: price, Amount: amount})
		}
		return market.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

var _ venue.Adapter = (*Adapter)(nil)
