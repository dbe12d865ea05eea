// Package snapshot holds the single-writer, many-reader publication point
// for a tick's results: the latest AllData snapshot and the latest ranked
// opportunity set. Both are published as whole-object replacements so that
// readers never observe a torn value (spec §4.7, §5).
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
)

// Snapshot is the published market data for one tick.
type Snapshot struct {
	Timestamp time.Time
	Data      market.AllData
}

// OpportunitiesSet is the published, ranked opportunity list for one tick.
type OpportunitiesSet struct {
	Timestamp time.Time
	Items     []opportunity.Opportunity
}

// Store publishes and serves the two per-tick values via atomic pointer
// swap: writers replace the whole value, readers load a consistent
// snapshot without locking.
type Store struct {
	snapshot     atomic.Pointer[Snapshot]
	opportunities atomic.Pointer[OpportunitiesSet]
}

// NewStore builds an empty, not-yet-ready Store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the latest Snapshot and then the latest
// OpportunitiesSet, each with its own atomic pointer store; a reader
// between the two stores can see the new Snapshot next to the previous
// OpportunitiesSet. Timestamps are monotone non-decreasing across ticks
// because the scanner calls Publish once per completed tick, in order.
func (s *Store) Publish(data market.AllData, items []opportunity.Opportunity, ts time.Time) {
	s.snapshot.Store(&Snapshot{Timestamp: ts, Data: data})
	s.opportunities.Store(&OpportunitiesSet{Timestamp: ts, Items: items})
}

// LatestSnapshot returns the most recently published Snapshot and whether
// one has been published yet.
func (s *Store) LatestSnapshot() (Snapshot, bool) {
	p := s.snapshot.Load()
	if p == nil {
		return Snapshot{}, false
	}
	return *p, true
}

// LatestOpportunities returns the most recently published OpportunitiesSet
// and whether one has been published yet.
func (s *Store) LatestOpportunities() (OpportunitiesSet, bool) {
	p := s.opportunities.Load()
	if p == nil {
		return OpportunitiesSet{}, false
	}
	return *p, true
}
