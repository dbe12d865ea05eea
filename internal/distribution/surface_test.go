package distribution

import (
	"testing"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/opportunity"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/snapshot"
)

func TestSurface_NotReadyBeforeFirstPublish(t *testing.T) {
	surface := NewSurface(snapshot.NewStore())
	if _, ok := surface.LatestSnapshot(); ok {
		t.Fatal("expected not-ready before the store has been published to")
	}
}

func TestSurface_SubscribeReceivesBroadcast(t *testing.T) {
	surface := NewSurface(snapshot.NewStore())
	ch, cancel := surface.Subscribe()
	defer cancel()

	want := []opportunity.Opportunity{{Symbol: "BTC/USDT"}}
	surface.Publish(want)

	select {
	case got := <-ch:
		if len(got) != 1 || got[0].Symbol != "BTC/USDT" {
			t.Fatalf("unexpected broadcast payload: %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestSurface_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	surface := NewSurface(snapshot.NewStore())
	_, cancel := surface.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			surface.Publish([]opportunity.Opportunity{{Symbol: "BTC/USDT"}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestSurface_CancelStopsDelivery(t *testing.T) {
	surface := NewSurface(snapshot.NewStore())
	ch, cancel := surface.Subscribe()
	cancel()

	surface.Publish([]opportunity.Opportunity{{Symbol: "BTC/USDT"}})

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after cancel")
	}
}
