// Package bybit implements the Exchange Adapter for Bybit spot markets on
// top of github.com/bybit-exchange/bybit.go.api, the SDK the wider example
// pack (rahjooh-CryptoTrade) already depends on for Bybit, used here for the
// spot v5 market-data endpoints this scanner needs rather than that repo's
// futures websocket streams.
package bybit

import (
	"context"
	"fmt"
	"strings"

	bybitsdk "github.com/bybit-exchange/bybit.go.api"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// classifyErr maps Bybit's retCode 10006 ("too many visits") onto
// venue.ErrRateLimited so Guard's retry (spec §4.1) actually fires. The SDK
// surfaces API-level failures as a plain error built from retCode/retMsg
// rather than a typed Go error, hence the string match.
func classifyErr(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "10006") || strings.Contains(strings.ToLower(msg), "too many visits") || strings.Contains(strings.ToLower(msg), "rate limit") {
		return fmt.Errorf("bybit: %s: %w", op, venue.ErrRateLimited)
	}
	return fmt.Errorf("bybit: %s: %w", op, err)
}

// Adapter implements venue.Adapter for Bybit spot, category "spot".
type Adapter struct {
	client         *bybitsdk.Client
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[market.Symbol]market.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[market.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[market.OrderBook]
	log            logger.LoggerInterface
}

// New builds a Bybit adapter. apiKey/secret are optional for the read-only
// spot market-data surface this scanner needs.
func New(log logger.LoggerInterface, apiKey, secret string, requestsPerMinute int) *Adapter {
	client := bybitsdk.NewBybitHttpClient(apiKey, secret, bybitsdk.WithBaseURL(bybitsdk.MAINNET))
	return &Adapter{
		client:         client,
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[market.Symbol]market.MarketMeta]("bybit.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[market.Ticker]("bybit.fetchTicker"),
		bookBreaker:    venue.NewBreaker[market.OrderBook]("bybit.fetchOrderBook"),
		log:            log,
	}
}

func toBybitSymbol(s market.Symbol) string {
	return s.Base() + s.Quote()
}

func asString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func decField(m map[string]interface{}, key string) decimal.Decimal {
	v, _ := decimal.NewFromString(asString(m, key))
	return v
}

// defaultTakerFee is Bybit's standard non-VIP spot taker rate, applied
// since instruments-info doesn't return per-symbol fees.
var defaultTakerFee = decimal.NewFromFloat(0.001)

// LoadMarkets fetches the spot instruments list and derives MarketMeta.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[market.Symbol]market.MarketMeta, error) {
		params := map[string]interface{}{"category": "spot"}
		resp, err := a.client.NewUtaBybitServiceWithParams(params).GetInstrumentsInfo(ctx)
		if err != nil {
			return nil, classifyErr("load markets", err)
		}
		result, _ := resp.Result.(map[string]interface{})
		list, _ := result["list"].([]interface{})
		out := make(map[market.Symbol]market.MarketMeta, len(list))
		for _, raw := range list {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			base := asString(item, "baseCoin")
			quote := asString(item, "quoteCoin")
			sym, err := market.NewSymbol(base, quote)
			if err != nil {
				continue
			}
			meta := market.MarketMeta{
				Active:   asString(item, "status") == "Trading",
				Spot:     true,
				TakerFee: defaultTakerFee,
			}
			if lot, ok := item["lotSizeFilter"].(map[string]interface{}); ok {
				meta.MinAmount = decField(lot, "minOrderQty")
				meta.MaxAmount = decField(lot, "maxOrderQty")
			}
			out[sym] = meta
		}
		return out, nil
	})
}

// FetchTicker returns the current spot ticker for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (market.Ticker, error) {
		params := map[string]interface{}{"category": "spot", "symbol": toBybitSymbol(symbol)}
		resp, err := a.client.NewUtaBybitServiceWithParams(params).GetTickers(ctx)
		if err != nil {
			return market.Ticker{}, classifyErr("fetch ticker", err)
		}
		result, _ := resp.Result.(map[string]interface{})
		list, _ := result["list"].([]interface{})
		if len(list) == 0 {
			return market.Ticker{}, fmt.Errorf("bybit: fetch ticker: no data for %s", toBybitSymbol(symbol))
		}
		item, _ := list[0].(map[string]interface{})
		last := decField(item, "lastPrice")
		bid := decField(item, "bid1Price")
		ask := decField(item, "ask1Price")
		return market.Ticker{
			Last:      last,
			Bid:       bid,
			Ask:       ask,
			Spread:    ask.Sub(bid),
			Volume:    decField(item, "volume24h"),
			ChangePct: decField(item, "price24hPcnt"),
		}, nil
	})
}

// FetchOrderBook returns up to limit levels per side for symbol.
func (a *Adapter) FetchOrderBook(ctx context.Context, symbol market.Symbol, limit int) (market.OrderBook, error) {
	return venue.Guard(ctx, a.limiter, a.bookBreaker, func(ctx context.Context) (market.OrderBook, error) {
		params := map[string]interface{}{
			"category": "spot",
			"symbol":   toBybitSymbol(symbol),
			"limit":    fmt.Sprintf("%d", limit),
		}
		resp, err := a.client.NewUtaBybitServiceWithParams(params).GetOrderbook(ctx)
		if err != nil {
			return market.OrderBook{}, classifyErr("fetch order book", err)
		}
		result, _ := resp.Result.(map[string]interface{})
		rawBids, _ := result["b"].([]interface{})
		rawAsks, _ := result["a"].([]interface{})
		bids, err := venue.ParseLevels(toStringRows(rawBids), limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		asks, err := venue.ParseLevels(toStringRows(rawAsks), limit)
		if err != nil {
			return market.OrderBook{}, err
		}
		return market.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

func toStringRows(raw []interface{}) [][]string {
	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		pair, ok := r.([]interface{})
		if !ok {
			continue
		}
		row := make([]string, 0, len(pair))
		for _, v := range pair {
			s, _ := v.(string)
			row = append(row, s)
		}
		rows = append(rows, row)
	}
	return rows
}

var _ venue.Adapter = (*Adapter)(nil)
