package market

import (
	"context"
	"fmt"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/apperror"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// Fetcher produces a PairSnapshot for a single (venue, symbol) pair,
// sequencing the checks in §4.4's fixed order and returning a typed
// *apperror.AppError naming the exact failure kind on any step's failure.
type Fetcher struct {
	cache    *Cache
	adapters map[venue.ID]venue.Adapter
	statuses *venue.StatusTracker
}

// NewFetcher builds a Fetcher over cache and the given venue adapters.
// statuses may be nil; status recording is skipped in that case.
func NewFetcher(cache *Cache, adapters map[venue.ID]venue.Adapter, statuses *venue.StatusTracker) *Fetcher {
	return &Fetcher{cache: cache, adapters: adapters, statuses: statuses}
}

// Fetch runs the sequenced checks and returns a PairSnapshot on success, or
// an *apperror.AppError carrying one of the Pair Fetcher codes on failure.
func (f *Fetcher) Fetch(ctx context.Context, v venue.ID, symbol Symbol) (PairSnapshot, error) {
	adapter, ok := f.adapters[v]
	if !ok || !venue.IsSupported(v) {
		return PairSnapshot{}, apperror.New(apperror.CodeUnsupportedVenue,
			apperror.WithContext(string(v)),
			apperror.WithCategory(apperror.CategoryConfigurational))
	}

	markets := f.cache.Markets(ctx, v)
	if markets == nil || len(markets) == 0 {
		return PairSnapshot{}, apperror.New(apperror.CodeMarketsUnavailable,
			apperror.WithContext(string(v)),
			apperror.WithCategory(apperror.CategoryTransient))
	}

	meta, ok := markets[symbol]
	if !ok {
		return PairSnapshot{}, apperror.New(apperror.CodeUnknownSymbol,
			apperror.WithContext(fmt.Sprintf("%s@%s", symbol, v)),
			apperror.WithCategory(apperror.CategorySemantic))
	}
	if !meta.Active {
		return PairSnapshot{}, apperror.New(apperror.CodeInactiveMarket,
			apperror.WithContext(fmt.Sprintf("%s@%s", symbol, v)),
			apperror.WithCategory(apperror.CategorySemantic))
	}
	if !meta.Spot {
		return PairSnapshot{}, apperror.New(apperror.CodeNotSpot,
			apperror.WithContext(fmt.Sprintf("%s@%s", symbol, v)),
			apperror.WithCategory(apperror.CategorySemantic))
	}

	start := time.Now()
	ticker, err := adapter.FetchTicker(ctx, symbol)
	if err != nil {
		f.recordStatus(v, false, time.Since(start), err)
		return PairSnapshot{}, apperror.New(apperror.CodeTickerUnavailable,
			apperror.WithContext(fmt.Sprintf("%s@%s", symbol, v)),
			apperror.WithCause(err),
			apperror.WithCategory(apperror.CategoryTransient))
	}

	book, err := adapter.FetchOrderBook(ctx, symbol, MaxOrderBookDepth)
	if err != nil {
		f.recordStatus(v, false, time.Since(start), err)
		return PairSnapshot{}, apperror.New(apperror.CodeOrderBookUnavailable,
			apperror.WithContext(fmt.Sprintf("%s@%s", symbol, v)),
			apperror.WithCause(err),
			apperror.WithCategory(apperror.CategoryTransient))
	}
	f.recordStatus(v, true, time.Since(start), nil)

	return PairSnapshot{
		Symbol: symbol,
		Venue:  string(v),
		Price:  ticker,
		OrderBook: OrderBook{
			Bids: book.Bids,
			Asks: book.Asks,
		},
		Fees: Fees{
			Maker:      meta.MakerFee,
			Taker:      meta.TakerFee,
			Withdrawal: nil,
		},
		Limits: Limits{
			MinAmount: meta.MinAmount,
			MaxAmount: meta.MaxAmount,
			MinPrice:  meta.MinPrice,
			MaxPrice:  meta.MaxPrice,
			MinCost:   meta.MinCost,
			MaxCost:   meta.MaxCost,
		},
		Precision: Precision{
			Price:  meta.PricePrecision,
			Amount: meta.AmountPrecision,
		},
	}, nil
}

// recordStatus updates the shared StatusTracker, if one was configured.
func (f *Fetcher) recordStatus(v venue.ID, healthy bool, latency time.Duration, err error) {
	if f.statuses == nil {
		return
	}
	s := venue.Status{Venue: v, Healthy: healthy, Latency: latency}
	if err != nil {
		s.LastError = err.Error()
	}
	f.statuses.Record(s)
}
