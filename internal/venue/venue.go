// Package venue defines the capability contract every exchange adapter
// implements, and the constant registry of supported venues.
package venue

import (
	"context"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
)

// ID identifies a venue drawn from the fixed registry.
type ID string

// The supported venue registry (spec §6), constant for process lifetime.
const (
	Binance ID = "binance"
	KuCoin  ID = "kucoin"
	Gate    ID = "gate"
	Bitget  ID = "bitget"
	MEXC    ID = "mexc"
	Bybit   ID = "bybit"
)

// All lists the registry in a stable, fixed order used wherever the spec
// requires "registry order" iteration (spec §5).
var All = []ID{Binance, KuCoin, Gate, Bitget, MEXC, Bybit}

// IsSupported reports whether id resolves to exactly one Adapter.
func IsSupported(id ID) bool {
	for _, v := range All {
		if v == id {
			return true
		}
	}
	return false
}

// Credentials are optional; read-only operations work without them.
type Credentials struct {
	APIKey     string
	Secret     string
	Passphrase string
}

// Adapter is the single capability contract dispatched through an interface
// abstraction per venue (spec §4.1, §9's "duck-typed facades become one
// capability contract with variants" re-architecture note). Implementations
// never panic across this boundary: every failure comes back as a plain
// error value (venue.ErrRateLimited for a rate limit that survived Guard's
// retry), and the caller (the Pair Fetcher) translates it into one of its
// own *apperror.AppError codes.
type Adapter interface {
	// LoadMarkets fetches every symbol's MarketMeta for this venue. It does
	// not cache; the Markets Cache above this layer stores the first result
	// per venue.
	LoadMarkets(ctx context.Context) (map[market.Symbol]market.MarketMeta, error)
	// FetchTicker returns the current price block for symbol.
	FetchTicker(ctx context.Context, symbol market.Symbol) (market.Ticker, error)
	// FetchOrderBook returns up to limit levels per side for symbol.
	FetchOrderBook(ctx context.Context, symbol market.Symbol, limit int) (market.OrderBook, error)
}

// Status reports an adapter's current health, adapted from the teacher's
// Reporter.UpdateConnectionStatus shape for the health server's /ready check.
type Status struct {
	Venue     ID
	Healthy   bool
	Latency   time.Duration
	LastError string
}
