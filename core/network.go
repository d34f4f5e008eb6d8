package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"
	"github.com/sirupsen/logrus"
)

// Node is a GPPN/Veritas participant: a libp2p host plumbed into
// GossipSub for broadcast and, optionally, a Kademlia DHT for peer
// routing. Grounded on core/network.go's original host/pubsub/peers
// wiring, with the blockchain-specific orphan-block and NAT-traversal
// pieces dropped (see DESIGN.md).
type Node struct {
	host   host.Host
	pubsub *pubsub.PubSub
	dht    *dht.IpfsDHT

	topicLock sync.Mutex
	topics    map[string]*pubsub.Topic

	subLock sync.Mutex
	subs    map[string]*pubsub.Subscription

	peerLock sync.RWMutex
	peers    map[NodeID]*Peer

	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc
}

// NewNode bootstraps a libp2p host for cfg: joins GossipSub, optionally
// starts a Kademlia DHT in server mode, dials bootstrap peers, and wires
// mDNS discovery under cfg.DiscoveryTag.
func NewNode(cfg Config) (*Node, error) {
	ctx, cancel := context.WithCancel(context.Background())

	h, err := libp2p.New(libp2p.ListenAddrStrings(cfg.ListenAddr))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: create host: %v", ErrTransport, err)
	}

	ps, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		h.Close()
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrGossipsub, err)
	}

	n := &Node{
		host:   h,
		pubsub: ps,
		topics: make(map[string]*pubsub.Topic),
		subs:   make(map[string]*pubsub.Subscription),
		peers:  make(map[NodeID]*Peer),
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}

	if cfg.EnableDHT {
		kad, err := dht.New(ctx, h, dht.Mode(dht.ModeServer))
		if err != nil {
			h.Close()
			cancel()
			return nil, fmt.Errorf("%w: %v", ErrKademlia, err)
		}
		if err := kad.Bootstrap(ctx); err != nil {
			logrus.Warnf("dht bootstrap: %v", err)
		}
		n.dht = kad
	}

	if err := n.DialSeed(cfg.BootstrapPeers); err != nil {
		logrus.Warnf("dial seed: %v", err)
	}

	if err := mdns.NewMdnsService(h, cfg.DiscoveryTag, n).Start(); err != nil {
		logrus.Warnf("mdns start: %v", err)
	}

	return n, nil
}

var _ mdns.Notifee = (*Node)(nil)

// HandlePeerFound implements mdns.Notifee: dial newly discovered peers.
func (n *Node) HandlePeerFound(info peer.AddrInfo) {
	if info.ID == n.host.ID() {
		return
	}
	n.peerLock.RLock()
	_, known := n.peers[NodeID(info.ID.String())]
	n.peerLock.RUnlock()
	if known {
		return
	}
	if err := n.host.Connect(n.ctx, info); err != nil {
		logrus.Warnf("connect to discovered peer %s: %v", info.ID, err)
		return
	}
	n.peerLock.Lock()
	n.peers[NodeID(info.ID.String())] = &Peer{ID: NodeID(info.ID.String()), Addr: info.String()}
	n.peerLock.Unlock()
}

// DialSeed connects to a list of bootstrap multiaddrs.
func (n *Node) DialSeed(seeds []string) error {
	var errs []string
	for _, addr := range seeds {
		pi, err := peer.AddrInfoFromString(addr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid addr %s: %v", addr, err))
			continue
		}
		if err := n.host.Connect(n.ctx, *pi); err != nil {
			errs = append(errs, fmt.Sprintf("connect %s: %v", addr, err))
			continue
		}
		n.peerLock.Lock()
		n.peers[NodeID(pi.ID.String())] = &Peer{ID: NodeID(pi.ID.String()), Addr: addr}
		n.peerLock.Unlock()
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrDial, strings.Join(errs, "; "))
	}
	return nil
}

// Broadcast publishes data on topic, joining it lazily.
func (n *Node) Broadcast(topic string, data []byte) error {
	n.topicLock.Lock()
	t, ok := n.topics[topic]
	if !ok {
		var err error
		t, err = n.pubsub.Join(topic)
		if err != nil {
			n.topicLock.Unlock()
			return fmt.Errorf("%w: join %s: %v", ErrGossipsub, topic, err)
		}
		n.topics[topic] = t
	}
	n.topicLock.Unlock()
	if err := t.Publish(n.ctx, data); err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrGossipsub, topic, err)
	}
	return nil
}

// Close tears down the host, DHT, and background context.
func (n *Node) Close() error {
	n.cancel()
	if n.dht != nil {
		_ = n.dht.Close()
	}
	return n.host.Close()
}

// Peers returns the current known-peer list.
func (n *Node) Peers() []*Peer {
	n.peerLock.RLock()
	defer n.peerLock.RUnlock()
	out := make([]*Peer, 0, len(n.peers))
	for _, p := range n.peers {
		out = append(out, p)
	}
	return out
}
