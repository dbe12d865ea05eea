package snapshot

import (
	"sync"
	"testing"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
)

func TestStore_NotReadyBeforeFirstPublish(t *testing.T) {
	store := NewStore()
	if _, ok := store.LatestSnapshot(); ok {
		t.Fatal("expected LatestSnapshot to report not-ready before any Publish")
	}
	if _, ok := store.LatestOpportunities(); ok {
		t.Fatal("expected LatestOpportunities to report not-ready before any Publish")
	}
}

func TestStore_PublishIsWholeObjectReplacement(t *testing.T) {
	store := NewStore()
	data1 := market.AllData{"BTC/USDT": {}}
	items1 := []opportunity.Opportunity{{Symbol: "BTC/USDT"}}
	ts1 := time.Unix(100, 0)
	store.Publish(data1, items1, ts1)

	snap, ok := store.LatestSnapshot()
	if !ok || !snap.Timestamp.Equal(ts1) {
		t.Fatalf("expected first publish to be visible, got ok=%v ts=%v", ok, snap.Timestamp)
	}

	data2 := market.AllData{"ETH/USDT": {}}
	items2 := []opportunity.Opportunity{{Symbol: "ETH/USDT"}, {Symbol: "BTC/USDT"}}
	ts2 := time.Unix(200, 0)
	store.Publish(data2, items2, ts2)

	snap, _ = store.LatestSnapshot()
	if _, ok := snap.Data["BTC/USDT"]; ok {
		t.Fatal("expected the second publish to fully replace the first, not merge")
	}
	set, ok := store.LatestOpportunities()
	if !ok || len(set.Items) != 2 {
		t.Fatalf("expected second opportunities publish to replace the first, got %d items", len(set.Items))
	}
}

func TestStore_ConcurrentReadersSeeConsistentValue(t *testing.T) {
	store := NewStore()
	store.Publish(market.AllData{}, nil, time.Unix(1, 0))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.LatestSnapshot(); !ok {
				t.Error("expected a published snapshot to be visible to all readers")
			}
		}()
	}
	wg.Wait()
}
