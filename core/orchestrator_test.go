package core

import (
	"context"
	"math/big"
	"testing"
	"time"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	keys, err := NewIdentityKeyStore()
	if err != nil {
		t.Fatalf("NewIdentityKeyStore: %v", err)
	}
	o := NewOrchestrator(DID("did:gppn:key:self"), nil, NewMemoryStore(), keys)
	o.Start()
	t.Cleanup(o.Stop)
	return o
}

func TestOrchestratorSubmitAppliesOnEventLoop(t *testing.T) {
	o := newTestOrchestrator(t)

	applied := make(chan struct{})
	err := o.Submit(context.Background(), "test", func(o *Orchestrator) {
		close(applied)
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	select {
	case <-applied:
	default:
		t.Fatalf("expected apply closure to have run before Submit returned")
	}
}

func TestOrchestratorSubmitAfterStopReturnsErrShutDown(t *testing.T) {
	o := newTestOrchestrator(t)
	o.Stop()

	err := o.Submit(context.Background(), "test", func(o *Orchestrator) {})
	if err != ErrShutDown {
		t.Fatalf("expected ErrShutDown after Stop, got %v", err)
	}
}

func TestOrchestratorSubmitRespectsCallerContext(t *testing.T) {
	o := newTestOrchestrator(t)

	// Fill the event loop with a slow command so the next Submit's ctx
	// can expire while still queued.
	block := make(chan struct{})
	go o.Submit(context.Background(), "slow", func(o *Orchestrator) {
		<-block
	})
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := o.Submit(ctx, "test", func(o *Orchestrator) {})
	if err != ErrChannel {
		t.Fatalf("expected ErrChannel on context expiry, got %v", err)
	}
	close(block)
}

func TestOrchestratorRouteRequestEmptyTable(t *testing.T) {
	o := newTestOrchestrator(t)

	amt := Amount{Value: big.NewInt(1), Currency: Currency{Code: "USD"}}
	resp, err := o.RouteRequest(context.Background(), DID("did:gppn:key:dest"), amt, 3, 6, 0, DefaultScoringWeights)
	if err != nil {
		t.Fatalf("RouteRequest: %v", err)
	}
	if resp.Found {
		t.Fatalf("expected Found=false against an empty routing table")
	}
	if resp.Error != ErrEmptyRoutingTable.Error() {
		t.Fatalf("expected %q, got %q", ErrEmptyRoutingTable.Error(), resp.Error)
	}
}
