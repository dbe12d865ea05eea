// Package scan drives the periodic tick that ties every other component
// together: it walks the symbol universe in fixed-size batches, fans out
// Pair Fetches per (symbol, venue), runs the Opportunity Engine over the
// results, and publishes to the Snapshot Store and Distribution Surface
// (spec §4.5).
package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/distribution"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/snapshot"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// perVenueConcurrency bounds how many Pair Fetches run concurrently for a
// single venue within one tick. It is a fixed size, independent of the
// venue's rate limiter burst.
const perVenueConcurrency = 4

// tickIDKey is the context key for the per-tick correlation ID threaded
// through fetch/log calls within a single tick.
type tickIDKey struct{}

// Config bundles the Scheduler's tunables (spec §6).
type Config struct {
	Interval   time.Duration
	BatchSize  int
	Venues     []venue.ID
	Thresholds opportunity.Thresholds
	Debug      bool
}

// Scheduler is the Scan Scheduler: a round-robin batch cursor over the
// alphabetical symbol universe, driving one tick at a time on a fixed-rate,
// non-overlapping timer.
type Scheduler struct {
	cfg      Config
	universe *market.Universe
	fetcher  *market.Fetcher
	store    *snapshot.Store
	surface  *distribution.Surface
	log      logger.LoggerInterface

	mu        sync.Mutex
	universeSyms []market.Symbol
	scanIndex    int

	metrics *tickMetrics
}

// New builds a Scheduler. Metric instrument registration failures are
// logged but never prevent the scheduler from running: the debug counters
// still reach the log line either way.
func New(cfg Config, universe *market.Universe, fetcher *market.Fetcher, store *snapshot.Store, surface *distribution.Surface, log logger.LoggerInterface) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		universe: universe,
		fetcher:  fetcher,
		store:    store,
		surface:  surface,
		log:      log,
	}

	m, err := newTickMetrics()
	if err != nil {
		log.Warn(context.Background(), "scan metrics unavailable", "error", err)
	} else {
		s.metrics = m
	}

	return s
}

// Run drives ticks until ctx is cancelled. The first tick runs immediately;
// each subsequent tick starts cfg.Interval after the previous one started,
// or immediately after it completes when it ran longer than cfg.Interval
// (fixed-rate, non-overlapping).
func (s *Scheduler) Run(ctx context.Context) {
	for {
		start := time.Now()
		s.tick(ctx)
		elapsed := time.Since(start)

		wait := s.cfg.Interval - elapsed
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// tick executes one full scan cycle: compute-or-reuse the universe, advance
// the batch cursor, fan out fetches, run the engine, and publish.
func (s *Scheduler) tick(ctx context.Context) {
	tickID := uuid.New().String()
	ctx = context.WithValue(ctx, tickIDKey{}, tickID)

	batch, ok := s.nextBatch(ctx)
	if !ok {
		s.log.Warn(ctx, "scan tick aborted: empty universe", "tickId", tickID)
		return
	}

	data := s.fetchBatch(ctx, batch)

	items, counters := opportunity.Compute(data, s.cfg.Thresholds, s.cfg.Debug)
	if s.cfg.Debug {
		s.log.Info(ctx, "scan tick counters",
			"tickId", tickID,
			"pairsChecked", counters.PairsChecked,
			"pairsMissingOB", counters.PairsMissingOB,
			"pairsInsufficientFill", counters.PairsInsufficientFill,
			"pairsBelowSpread", counters.PairsBelowSpread,
			"pairsBelowNotional", counters.PairsBelowNotional,
			"pairsLimitsFail", counters.PairsLimitsFail,
		)
		s.recordMetrics(ctx, counters, len(items))
	}

	now := time.Now()
	s.store.Publish(data, items, now)
	s.surface.Publish(items)
}

// recordMetrics exports the tick's debug counters as OTEL counters, when
// instrument registration succeeded at construction time.
func (s *Scheduler) recordMetrics(ctx context.Context, counters opportunity.Counters, published int) {
	if s.metrics == nil {
		return
	}
	s.metrics.pairsChecked.Add(ctx, int64(counters.PairsChecked))
	s.metrics.pairsMissingOB.Add(ctx, int64(counters.PairsMissingOB))
	s.metrics.pairsInsufficientFill.Add(ctx, int64(counters.PairsInsufficientFill))
	s.metrics.pairsBelowSpread.Add(ctx, int64(counters.PairsBelowSpread))
	s.metrics.pairsBelowNotional.Add(ctx, int64(counters.PairsBelowNotional))
	s.metrics.pairsLimitsFail.Add(ctx, int64(counters.PairsLimitsFail))
	s.metrics.opportunitiesPublished.Add(ctx, int64(published))
}

// nextBatch computes the universe on first use, then returns the next
// fixed-size batch and advances (and wraps) the cursor.
func (s *Scheduler) nextBatch(ctx context.Context) ([]market.Symbol, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.universeSyms == nil {
		syms := s.universe.CommonUSDTSymbols(ctx)
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		s.universeSyms = syms
		s.scanIndex = 0
	}
	if len(s.universeSyms) == 0 {
		return nil, false
	}

	end := s.scanIndex + s.cfg.BatchSize
	if end > len(s.universeSyms) {
		end = len(s.universeSyms)
	}
	batch := s.universeSyms[s.scanIndex:end]

	s.scanIndex = end
	if s.scanIndex >= len(s.universeSyms) {
		s.scanIndex = 0
	}
	return batch, true
}

// fetchBatch runs the Pair Fetcher for every (symbol, venue) pair in batch,
// bounding per-venue concurrency, and assembles AllData from the successes
// that carry a non-empty order-book top-of-book on both sides (spec §3). A
// symbol with no qualifying venue is dropped entirely.
func (s *Scheduler) fetchBatch(ctx context.Context, batch []market.Symbol) market.AllData {
	type result struct {
		symbol market.Symbol
		venue  venue.ID
		snap   market.PairSnapshot
		err    error
	}

	sems := make(map[venue.ID]chan struct{}, len(s.cfg.Venues))
	for _, v := range s.cfg.Venues {
		sems[v] = make(chan struct{}, perVenueConcurrency)
	}

	results := make(chan result, len(batch)*len(s.cfg.Venues))
	var wg sync.WaitGroup

	for _, sym := range batch {
		for _, v := range s.cfg.Venues {
			wg.Add(1)
			go func(sym market.Symbol, v venue.ID) {
				defer wg.Done()
				sem := sems[v]
				sem <- struct{}{}
				defer func() { <-sem }()

				snap, err := s.fetcher.Fetch(ctx, v, sym)
				results <- result{symbol: sym, venue: v, snap: snap, err: err}
			}(sym, v)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	data := make(market.AllData)
	for r := range results {
		if r.err != nil {
			s.log.Debug(ctx, "pair fetch failed", "symbol", r.symbol, "venue", r.venue, "error", r.err)
			continue
		}
		if _, ok := r.snap.OrderBook.BestBid(); !ok {
			s.log.Debug(ctx, "pair fetch missing bid", "symbol", r.symbol, "venue", r.venue)
			continue
		}
		if _, ok := r.snap.OrderBook.BestAsk(); !ok {
			s.log.Debug(ctx, "pair fetch missing ask", "symbol", r.symbol, "venue", r.venue)
			continue
		}
		if data[r.symbol] == nil {
			data[r.symbol] = make(map[string]market.PairSnapshot)
		}
		data[r.symbol][string(r.venue)] = r.snap
	}

	for sym, byVenue := range data {
		if len(byVenue) == 0 {
			delete(data, sym)
		}
	}
	return data
}
