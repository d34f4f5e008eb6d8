package core

import (
	"fmt"
	"sync"
)

// DRT is the Distributed Routing Table: a concurrently mutable map keyed
// by (destination_did_uri, next_hop_peer_id). Per-key operations are
// linearizable; multi-key snapshots (AllEntries, Destinations) are
// point-in-time, not globally atomic.
type DRT struct {
	mu      sync.RWMutex
	entries map[string]RouteEntry
}

// NewDRT returns an empty routing table.
func NewDRT() *DRT {
	return &DRT{entries: make(map[string]RouteEntry)}
}

// Insert replaces any prior entry for the same (destination, next hop)
// key and returns the prior value, if any.
func (d *DRT) Insert(entry RouteEntry) (prior RouteEntry, hadPrior bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := entry.Key()
	prior, hadPrior = d.entries[key]
	d.entries[key] = entry
	return prior, hadPrior
}

// GetRoutes returns all entries for destination dest; order unspecified.
func (d *DRT) GetRoutes(dest DID) []RouteEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []RouteEntry
	for _, e := range d.entries {
		if e.Destination == dest {
			out = append(out, e)
		}
	}
	return out
}

// Update atomically reads, applies f, and writes back the entry for
// (dest, nextHop). Returns whether the entry was found.
func (d *DRT) Update(dest DID, nextHop string, f func(*RouteEntry)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := string(dest) + "|" + nextHop
	e, ok := d.entries[key]
	if !ok {
		return false
	}
	f(&e)
	d.entries[key] = e
	return true
}

// Remove deletes the entry for (dest, nextHop), if any.
func (d *DRT) Remove(dest DID, nextHop string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, string(dest)+"|"+nextHop)
}

// RemoveExpired sweeps entries where now-last_updated >= ttl and returns
// the removed count.
func (d *DRT) RemoveExpired(nowMs int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for k, e := range d.entries {
		if e.Expired(nowMs) {
			delete(d.entries, k)
			removed++
		}
	}
	return removed
}

// AllEntries returns a point-in-time snapshot of every entry.
func (d *DRT) AllEntries() []RouteEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]RouteEntry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	return out
}

// Destinations returns the set of distinct destinations currently known.
func (d *DRT) Destinations() []DID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[DID]bool)
	for _, e := range d.entries {
		seen[e.Destination] = true
	}
	out := make([]DID, 0, len(seen))
	for dest := range seen {
		out = append(out, dest)
	}
	return out
}

// IngestAdvertisement validates and installs entries from adv, bounded
// by maxHops. Returns the number of entries installed.
func (d *DRT) IngestAdvertisement(adv Advertisement, maxHops int) (int, error) {
	if adv.AdvertiserPeerID == "" {
		return 0, fmt.Errorf("%w: empty advertiser peer id", ErrInvalidRouteEntry)
	}
	if len(adv.Destinations) == 0 {
		return 0, fmt.Errorf("%w: no destinations", ErrInvalidRouteEntry)
	}
	installed := 0
	now := adv.CreatedAt
	for _, da := range adv.Destinations {
		if da.FeeRate < 0 || da.FeeRate > 1 || da.TrustScore < 0 || da.TrustScore > 1 {
			continue
		}
		hopCount := da.HopCount + 1
		if hopCount > maxHops {
			continue
		}
		entry := RouteEntry{
			Destination:         da.Destination,
			NextHopPeerID:       adv.AdvertiserPeerID,
			SupportedCurrencies: da.SupportedCurrencies,
			AvailableLiquidity:  da.AvailableLiquidity,
			FeeRate:             da.FeeRate,
			AvgLatencyMs:        da.AvgLatencyMs,
			TrustScore:          da.TrustScore,
			LastUpdated:         now,
			TTL:                 adv.TTL,
			HopCount:            hopCount,
		}
		d.Insert(entry)
		installed++
	}
	return installed, nil
}

// BuildAdvertisement constructs this node's outgoing advertisement by
// filtering local entries whose hop_count+1 <= maxHops, incrementing
// hop_count.
func (d *DRT) BuildAdvertisement(selfDID DID, selfPeerID string, maxHops int, nowMs int64, sequence uint64, ttl int64) Advertisement {
	all := d.AllEntries()
	out := make([]DestinationAnnouncement, 0, len(all))
	for _, e := range all {
		hopCount := e.HopCount + 1
		if hopCount > maxHops {
			continue
		}
		out = append(out, DestinationAnnouncement{
			Destination:         e.Destination,
			SupportedCurrencies: e.SupportedCurrencies,
			AvailableLiquidity:  e.AvailableLiquidity,
			FeeRate:             e.FeeRate,
			AvgLatencyMs:        e.AvgLatencyMs,
			TrustScore:          e.TrustScore,
			HopCount:            hopCount,
		})
	}
	return Advertisement{
		AdvertiserDID:    selfDID,
		AdvertiserPeerID: selfPeerID,
		Destinations:     out,
		CreatedAt:        nowMs,
		Sequence:         sequence,
		TTL:              ttl,
	}
}
