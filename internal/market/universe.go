package market

import (
	"context"
	"sort"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// Universe derives the tradable USDT-spot symbol set from a Cache.
type Universe struct {
	cache  *Cache
	venues []venue.ID
}

// NewUniverse builds a Universe over cache, restricted to venues.
func NewUniverse(cache *Cache, venues []venue.ID) *Universe {
	return &Universe{cache: cache, venues: venues}
}

// USDTSpotSymbols returns every symbol in venue v's cached markets that is
// USDT-quoted, active, and spot.
func (u *Universe) USDTSpotSymbols(ctx context.Context, v venue.ID) []Symbol {
	markets := u.cache.Markets(ctx, v)
	symbols := make([]Symbol, 0, len(markets))
	for sym, meta := range markets {
		if sym.IsUSDTQuoted() && meta.Active && meta.Spot {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// CommonUSDTSymbols returns, in ascending alphabetical order, every symbol
// present in at least two configured venues' USDT-spot symbol sets. An
// empty result is a valid, non-fabricated terminal state.
func (u *Universe) CommonUSDTSymbols(ctx context.Context) []Symbol {
	counts := make(map[Symbol]int)
	for _, v := range u.venues {
		for _, sym := range u.USDTSpotSymbols(ctx, v) {
			counts[sym]++
		}
	}
	out := make([]Symbol, 0, len(counts))
	for sym, count := range counts {
		if count >= 2 {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
