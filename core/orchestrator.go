package core

import (
	"context"
	"sync"
)

// NetworkCommand is one unit of work submitted to an Orchestrator's
// event loop. Commands are applied one at a time by a single goroutine
// (Orchestrator.run); RouteRequest goes through this channel. Other
// callers, such as the admin API handlers, call the subsystems directly
// and rely on each subsystem's own locking.
type NetworkCommand struct {
	Kind  string
	Apply func(o *Orchestrator)
	Done  chan struct{}
}

// networkCommandCapacity bounds the orchestrator's inbox: a producer
// that outruns the event loop blocks on Submit rather than growing
// memory without limit.
const networkCommandCapacity = 256

// Orchestrator composes one node's routing table, trust graph,
// settlement manager, HTLC engine, DID registry, credential verifier,
// and keystore behind a single-writer event loop, per spec §5's
// concurrency model.
type Orchestrator struct {
	Net        *Node
	Peers      *PeerManagement
	DRT        *DRT
	Trust      *TrustGraph
	Settlement *SettlementManager
	HTLC       *HTLCEngine
	DIDs       *DidRegistry
	Verifier   *CredentialVerifier
	Keys       *IdentityKeyStore
	Events     *Broadcaster

	self DID

	commands chan NetworkCommand
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewOrchestrator wires every subsystem around an already-started *Node.
func NewOrchestrator(self DID, net *Node, store StateRW, keys *IdentityKeyStore, trustedIssuers ...DID) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	didRegistry := NewDidRegistry(store)
	o := &Orchestrator{
		Net:        net,
		Peers:      NewPeerManagement(net),
		DRT:        NewDRT(),
		Trust:      NewTrustGraph(),
		Settlement: NewSettlementManager(),
		HTLC:       NewHTLCEngine(),
		DIDs:       didRegistry,
		Verifier:   NewCredentialVerifier(didRegistry, trustedIssuers...),
		Keys:       keys,
		Events:     NewBroadcaster(256),
		self:       self,
		commands:   make(chan NetworkCommand, networkCommandCapacity),
		ctx:        ctx,
		cancel:     cancel,
	}
	return o
}

// Start launches the single event-loop goroutine. Safe to call once.
func (o *Orchestrator) Start() {
	o.wg.Add(1)
	go o.run()
}

// Stop cancels the event loop and waits for it to drain.
func (o *Orchestrator) Stop() {
	o.cancel()
	o.wg.Wait()
}

func (o *Orchestrator) run() {
	defer o.wg.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case cmd := <-o.commands:
			cmd.Apply(o)
			if cmd.Done != nil {
				close(cmd.Done)
			}
		}
	}
}

// Submit enqueues a command and blocks until the event loop has applied
// it. Returns ErrShutDown if the orchestrator has been stopped, or
// ErrChannel if ctx is done before the command is enqueued or applied.
func (o *Orchestrator) Submit(ctx context.Context, kind string, apply func(o *Orchestrator)) error {
	if o.ctx.Err() != nil {
		return ErrShutDown
	}
	done := make(chan struct{})
	cmd := NetworkCommand{Kind: kind, Apply: apply, Done: done}
	select {
	case o.commands <- cmd:
	case <-ctx.Done():
		return ErrChannel
	case <-o.ctx.Done():
		return ErrShutDown
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrChannel
	}
}

// RouteRequest asynchronously resolves routes via the event loop, per
// DESIGN.md's Open Question #3 resolution: routing never short-circuits
// to {found:false} outside the loop.
func (o *Orchestrator) RouteRequest(ctx context.Context, to DID, amount Amount, k, maxHops int, minTrust float64, weights ScoringWeights) (RouteResponsePayload, error) {
	var resp RouteResponsePayload
	err := o.Submit(ctx, "route_request", func(o *Orchestrator) {
		routes, rerr := FindRoutes(o.DRT, o.self, to, amount, k, maxHops, minTrust, weights)
		if rerr != nil {
			resp = RouteResponsePayload{Found: false, Error: rerr.Error()}
			return
		}
		resp = RouteResponsePayload{Found: true, Routes: routes}
	})
	return resp, err
}
