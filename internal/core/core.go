// Package core wires the scanner's fixed component graph: config, logger,
// the six venue adapters, the Markets Cache, Symbol Universe, Pair Fetcher,
// Scan Scheduler, Snapshot Store, and Distribution Surface. It replaces the
// teacher's token-based di.Container/monolith.Module layer, which existed
// to let independently-registered modules discover each other's services —
// a job this single-component-graph scanner doesn't have (see DESIGN.md).
package core

import (
	"context"
	"fmt"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/config"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/distribution"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/logger"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/scan"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/snapshot"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/binance"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/bitget"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/bybit"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/gate"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/kucoin"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue/mexc"
)

// requestsPerMinute is the shared per-adapter rate-limiter budget. Public
// spot market-data endpoints across these venues comfortably tolerate this
// rate without dedicated per-venue tuning.
const requestsPerMinute = 1200

// Core is the injected state handle for the running scanner: every
// component below is constructed once in New and never replaced.
type Core struct {
	Config    *config.Config
	Log       logger.LoggerInterface
	Adapters  map[venue.ID]venue.Adapter
	Statuses  *venue.StatusTracker
	Cache     *market.Cache
	Universe  *market.Universe
	Fetcher   *market.Fetcher
	Store     *snapshot.Store
	Surface   *distribution.Surface
	Scheduler *scan.Scheduler
}

// New builds the full component graph from cfg and log.
func New(cfg *config.Config, log logger.LoggerInterface) (*Core, error) {
	adapters, err := buildAdapters(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("core: build venue adapters: %w", err)
	}

	scanVenues := make([]venue.ID, 0, len(cfg.Scan.Venues))
	for _, v := range cfg.Scan.Venues {
		id := venue.ID(v)
		if _, ok := adapters[id]; ok {
			scanVenues = append(scanVenues, id)
		}
	}

	statuses := venue.NewStatusTracker()
	cache := market.NewCache(adapters)
	universe := market.NewUniverse(cache, scanVenues)
	fetcher := market.NewFetcher(cache, adapters, statuses)
	store := snapshot.NewStore()
	surface := distribution.NewSurface(store)

	scheduler := scan.New(scan.Config{
		Interval:  cfg.Scan.Interval(),
		BatchSize: cfg.Scan.BatchSize,
		Venues:    scanVenues,
		Thresholds: opportunity.Thresholds{
			TradeSizeUSDT:   cfg.Scan.TradeSizeUSDTDecimal(),
			MinRawSpreadPct: cfg.Scan.MinRawSpreadPctDecimal(),
			MinTradeUSDT:    cfg.Scan.MinTradeUSDTDecimal(),
		},
		Debug: cfg.Scan.Debug,
	}, universe, fetcher, store, surface, log)

	return &Core{
		Config:    cfg,
		Log:       log,
		Adapters:  adapters,
		Statuses:  statuses,
		Cache:     cache,
		Universe:  universe,
		Fetcher:   fetcher,
		Store:     store,
		Surface:   surface,
		Scheduler: scheduler,
	}, nil
}

// Run starts the scan loop; it blocks until ctx is cancelled.
func (c *Core) Run(ctx context.Context) {
	c.Log.Info(ctx, "scan scheduler starting",
		"venues", c.Config.Scan.Venues,
		"intervalMs", c.Config.Scan.IntervalMs,
		"batchSize", c.Config.Scan.BatchSize,
	)
	c.Scheduler.Run(ctx)
}

func buildAdapters(cfg *config.Config, log logger.LoggerInterface) (map[venue.ID]venue.Adapter, error) {
	adapters := make(map[venue.ID]venue.Adapter, len(venue.All))
	for _, id := range venue.All {
		creds := cfg.Venues[string(id)]
		switch id {
		case venue.Binance:
			adapters[id] = binance.New(log, creds.APIKey, creds.Secret, requestsPerMinute)
		case venue.KuCoin:
			a, err := kucoin.New(log, creds.APIKey, creds.Secret, creds.Passphrase, requestsPerMinute)
			if err != nil {
				return nil, err
			}
			adapters[id] = a
		case venue.Bybit:
			adapters[id] = bybit.New(log, creds.APIKey, creds.Secret, requestsPerMinute)
		case venue.Gate:
			a, err := gate.New(log, requestsPerMinute)
			if err != nil {
				return nil, err
			}
			adapters[id] = a
		case venue.Bitget:
			a, err := bitget.New(log, requestsPerMinute)
			if err != nil {
				return nil, err
			}
			adapters[id] = a
		case venue.MEXC:
			a, err := mexc.New(log, requestsPerMinute)
			if err != nil {
				return nil, err
			}
			adapters[id] = a
		}
	}
	return adapters, nil
}
