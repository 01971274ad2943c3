package llm

import (
	"context"
	"time"
)

// gate admits one generation at a time with a bounded queue in front of it.
type gate struct {
	genCh   chan struct{} // size 1: single in-flight generation
	queueCh chan struct{} // buffered: queue slots
	maxWait time.Duration
}

func newGate(depth int, maxWait time.Duration) *gate {
	return &gate{
		genCh:   make(chan struct{}, 1),
		queueCh: make(chan struct{}, depth),
		maxWait: maxWait,
	}
}

// begin reserves a queue slot and then the single in-flight slot.
// Returns a release func to be deferred.
func (g *gate) begin(ctx context.Context, model string) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	timer := time.NewTimer(g.maxWait)
	defer timer.Stop()
	select {
	case g.queueCh <- struct{}{}:
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, tooBusyError{model: model}
	}

	acquired := false
	defer func() {
		if !acquired {
			<-g.queueCh
		}
	}()
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	timer2 := time.NewTimer(g.maxWait)
	defer timer2.Stop()
	select {
	case g.genCh <- struct{}{}:
		acquired = true
		return func() { <-g.genCh; <-g.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer2.C:
		return func() {}, tooBusyError{model: model}
	}
}

// inflight returns the number of queued and running generations.
func (g *gate) inflight() (queued, running int) { return len(g.queueCh), len(g.genCh) }
