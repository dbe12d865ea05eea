// Package kucoin implements the Exchange Adapter for KuCoin spot markets on
// top of the real SDK, github.com/Kucoin/kucoin-universal-sdk, the same
// dependency the wider example pack (rahjooh-CryptoTrade) uses for KuCoin.
package kucoin

import (
	"context"
	"fmt"
	"strings"

	kucoinsdk "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/client"
	"github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/generate/spot/market"
	kucoinoption "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/option"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	marketmodel "github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/ratelimit"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// classifyErr maps a KuCoin "429000" / "Too Many Requests" REST error onto
// venue.ErrRateLimited so Guard's retry (spec §4.1) actually fires. The
// universal SDK surfaces this as a generic error whose text carries the
// exchange's own code, not a typed Go error, hence the string match.
func classifyErr(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "429000") || strings.Contains(strings.ToLower(msg), "too many requests") {
		return fmt.Errorf("kucoin: %s: %w", op, venue.ErrRateLimited)
	}
	return fmt.Errorf("kucoin: %s: %w", op, err)
}

// Adapter implements venue.Adapter for KuCoin spot.
type Adapter struct {
	market         market.MarketAPI
	limiter        *ratelimit.Limiter
	marketsBreaker *gobreaker.CircuitBreaker[map[marketmodel.Symbol]marketmodel.MarketMeta]
	tickerBreaker  *gobreaker.CircuitBreaker[marketmodel.Ticker]
	bookBreaker    *gobreaker.CircuitBreaker[marketmodel.OrderBook]
	log            logger.LoggerInterface
}

// New builds a KuCoin adapter. apiKey/secret/passphrase are optional for
// the read-only spot market-data surface this scanner needs.
func New(log logger.LoggerInterface, apiKey, secret, passphrase string, requestsPerMinute int) (*Adapter, error) {
	opt := kucoinoption.NewClientOptionBuilder().
		WithKey(apiKey).
		WithSecret(secret).
		WithPassphrase(passphrase).
		Build()
	client := kucoinsdk.NewClient(opt)
	spotService, err := client.RestService().GetSpotService()
	if err != nil {
		return nil, fmt.Errorf("kucoin: build spot service: %w", err)
	}
	return &Adapter{
		market:         spotService.GetMarketAPI(),
		limiter:        ratelimit.New(requestsPerMinute),
		marketsBreaker: venue.NewBreaker[map[marketmodel.Symbol]marketmodel.MarketMeta]("kucoin.loadMarkets"),
		tickerBreaker:  venue.NewBreaker[marketmodel.Ticker]("kucoin.fetchTicker"),
		bookBreaker:    venue.NewBreaker[marketmodel.OrderBook]("kucoin.fetchOrderBook"),
		log:            log,
	}, nil
}

func toKuCoinSymbol(s marketmodel.Symbol) string {
	return fmt.Sprintf("%s-%s", s.Base(), s.Quote())
}

// defaultTakerFee is KuCoin's standard non-VIP spot taker rate, applied
// since GetAllSymbols doesn't return per-symbol fees.
var defaultTakerFee = decimal.NewFromFloat(0.001)

// LoadMarkets fetches the spot symbol list and derives MarketMeta.
func (a *Adapter) LoadMarkets(ctx context.Context) (map[marketmodel.Symbol]marketmodel.MarketMeta, error) {
	return venue.Guard(ctx, a.limiter, a.marketsBreaker, func(ctx context.Context) (map[marketmodel.Symbol]marketmodel.MarketMeta, error) {
		resp, err := a.market.GetAllSymbols(ctx, &market.GetAllSymbolsReq{})
		if err != nil {
			return nil, classifyErr("load markets", err)
		}
		out := make(map[marketmodel.Symbol]marketmodel.MarketMeta, len(resp.Data))
		for _, s := range resp.Data {
			sym, err := marketmodel.NewSymbol(s.BaseCurrency, s.QuoteCurrency)
			if err != nil {
				continue
			}
			meta := marketmodel.MarketMeta{
				Active:   s.EnableTrading,
				Spot:     true,
				TakerFee: defaultTakerFee,
			}
			if v, err := decimal.NewFromString(s.BaseMinSize); err == nil {
				meta.MinAmount = v
			}
			if v, err := decimal.NewFromString(s.BaseMaxSize); err == nil {
				meta.MaxAmount = v
			}
			if v, err := decimal.NewFromString(s.QuoteMinSize); err == nil {
				meta.MinCost = v
			}
			if v, err := decimal.NewFromString(s.QuoteMaxSize); err == nil {
				meta.MaxCost = v
			}
			out[sym] = meta
		}
		return out, nil
	})
}

// FetchTicker returns the current price block for symbol.
func (a *Adapter) FetchTicker(ctx context.Context, symbol marketmodel.Symbol) (marketmodel.Ticker, error) {
	return venue.Guard(ctx, a.limiter, a.tickerBreaker, func(ctx context.Context) (marketmodel.Ticker, error) {
		resp, err := a.market.GetTicker(ctx, &market.GetTickerReq{Symbol: toKuCoinSymbol(symbol)})
		if err != nil {
			return marketmodel.Ticker{}, classifyErr("fetch ticker", err)
		}
		last, _ := decimal.NewFromString(resp.Price)
		bid, _ := decimal.NewFromString(resp.BestBid)
		ask, _ := decimal.NewFromString(resp.BestAsk)
		return marketmodel.Ticker{
			Last:   last,
			Bid:    bid,
			Ask:    ask,
			Spread: ask.Sub(bid),
		}, nil
	})
}

// FetchOrderBook returns up to limit levels per side for symbol.
func (a *Adapter) FetchOrderBook(ctx context.Context, symbol marketmodel.Symbol, limit int) (marketmodel.OrderBook, error) {
	return venue.Guard(ctx, a.limiter, a.bookBreaker, func(ctx context.Context) (marketmodel.OrderBook, error) {
		resp, err := a.market.GetPartOrderBook(ctx, &market.GetPartOrderBookReq{Symbol: toKuCoinSymbol(symbol), Size: "20"})
		if err != nil {
			return marketmodel.OrderBook{}, classifyErr("fetch order book", err)
		}
		bids, err := venue.ParseLevels(resp.Bids, limit)
		if err != nil {
			return marketmodel.OrderBook{}, err
		}
		asks, err := venue.ParseLevels(resp.Asks, limit)
		if err != nil {
			return marketmodel.OrderBook{}, err
		}
		return marketmodel.OrderBook{Bids: bids, Asks: asks}, nil
	})
}

var _ venue.Adapter = (*Adapter)(nil)
