// Package distribution exposes the scanner's published state to readers
// and subscribers: two read operations backed by the Snapshot Store, and a
// broadcast hook the scheduler calls once per completed tick. Delivery to
// subscribers is best-effort; a slow subscriber never stalls the scanner
// (spec §4.8, §5).
package distribution

import (
	"sync"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/snapshot"
)

// subscriberBuffer bounds how many pending updates a slow subscriber can
// accumulate before the oldest one is dropped in favor of the newest.
const subscriberBuffer = 1

// Surface is the Distribution Surface.
type Surface struct {
	store *snapshot.Store

	mu   sync.Mutex
	subs map[int]chan []opportunity.Opportunity
	next int
}

// NewSurface builds a Surface backed by store.
func NewSurface(store *snapshot.Store) *Surface {
	return &Surface{
		store: store,
		subs:  make(map[int]chan []opportunity.Opportunity),
	}
}

// LatestSnapshot returns the current published Snapshot, or the empty
// sentinel and false if the scanner has not completed a tick yet.
func (s *Surface) LatestSnapshot() (snapshot.Snapshot, bool) {
	return s.store.LatestSnapshot()
}

// LatestOpportunities returns the current published OpportunitiesSet, or
// the empty sentinel and false if the scanner has not completed a tick yet.
func (s *Surface) LatestOpportunities() (snapshot.OpportunitiesSet, bool) {
	return s.store.LatestOpportunities()
}

// Subscribe registers a new subscriber and returns its update channel and a
// cancel function. The channel delivers the whole ranked list on each
// broadcast, never a diff.
func (s *Surface) Subscribe() (<-chan []opportunity.Opportunity, func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	ch := make(chan []opportunity.Opportunity, subscriberBuffer)
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ch, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish broadcasts items to every subscriber. A subscriber whose buffer
// is already full has its stale pending update dropped in favor of the
// fresh one; Publish never blocks on a slow subscriber.
func (s *Surface) Publish(items []opportunity.Opportunity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- items:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- items:
			default:
			}
		}
	}
}
