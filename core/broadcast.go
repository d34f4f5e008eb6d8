package core

import "sync"

// BroadcastEvent is one unit delivered to every subscriber of a
// Broadcaster.
type BroadcastEvent struct {
	Topic string
	Data  []byte
}

// Broadcaster is a bounded multi-producer multi-consumer fan-out: every
// Publish is pushed to every subscriber's channel without blocking the
// publisher. A slow subscriber drops events and has its lag counted,
// rather than stalling the rest of the system. Generalized from the
// teacher's core/network.go package-level replicatedMu/broadcastHook
// globals into a reusable, non-global type.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan BroadcastEvent
	lag  map[int]uint64
	next int
	cap  int
}

// NewBroadcaster returns a broadcaster whose per-subscriber channels
// hold up to bufferSize pending events.
func NewBroadcaster(bufferSize int) *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]chan BroadcastEvent),
		lag:  make(map[int]uint64),
		cap:  bufferSize,
	}
}

// Subscribe returns a subscriber id, a receive channel, and a cancel
// function. The id is stable input to Lag for as long as the
// subscription is live.
func (b *Broadcaster) Subscribe() (int, <-chan BroadcastEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan BroadcastEvent, b.cap)
	b.subs[id] = ch
	return id, ch, func() { b.unsubscribe(id) }
}

func (b *Broadcaster) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
		delete(b.lag, id)
	}
}

// Publish fans data out to every subscriber. A subscriber whose buffer
// is full has its oldest queued event evicted to make room, so every
// subscriber always advances to the newest event instead of stalling
// behind a backlog; its lag counter is incremented to mark the gap,
// mirroring the ring-buffer semantics of a tokio broadcast channel.
func (b *Broadcaster) Publish(topic string, data []byte) {
	ev := BroadcastEvent{Topic: topic, Data: data}
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
				b.lag[id]++
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Lag returns the number of events dropped for subscriber id so far.
func (b *Broadcaster) Lag(id int) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lag[id]
}
