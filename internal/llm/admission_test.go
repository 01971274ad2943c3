package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGateCanceledContext(t *testing.T) {
	g := newGate(1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.begin(ctx, "m"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if q, r := g.inflight(); q != 0 || r != 0 {
		t.Fatalf("leaked slots: queued=%d running=%d", q, r)
	}
}

func TestGateReleaseFreesSlots(t *testing.T) {
	g := newGate(2, 50*time.Millisecond)
	release, err := g.begin(context.Background(), "m")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if q, r := g.inflight(); q != 1 || r != 1 {
		t.Fatalf("queued=%d running=%d", q, r)
	}
	release()
	if q, r := g.inflight(); q != 0 || r != 0 {
		t.Fatalf("after release queued=%d running=%d", q, r)
	}
}

func TestGateTimesOutWhileRunning(t *testing.T) {
	g := newGate(2, 10*time.Millisecond)
	release, err := g.begin(context.Background(), "m")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer release()
	_, err = g.begin(context.Background(), "m")
	if !IsTooBusy(err) {
		t.Fatalf("want too busy, got %v", err)
	}
	// the failed waiter must give back its queue slot
	if q, _ := g.inflight(); q != 1 {
		t.Fatalf("queued=%d, want 1", q)
	}
}
