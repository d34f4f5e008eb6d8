package core

import "testing"

func sampleEntry(dest DID, nextHop string) RouteEntry {
	return RouteEntry{
		Destination:         dest,
		NextHopPeerID:       nextHop,
		SupportedCurrencies: map[string]bool{"USD": true},
		FeeRate:             0.01,
		TrustScore:          0.9,
		LastUpdated:         1000,
		TTL:                 500,
		HopCount:            0,
	}
}

func TestDRTInsertAndGetRoutes(t *testing.T) {
	d := NewDRT()
	dest := DID("did:gppn:key:dest")
	e := sampleEntry(dest, "peerA")
	if _, hadPrior := d.Insert(e); hadPrior {
		t.Fatalf("expected no prior entry")
	}
	routes := d.GetRoutes(dest)
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
}

func TestDRTInsertReplacesPrior(t *testing.T) {
	d := NewDRT()
	dest := DID("did:gppn:key:dest")
	e1 := sampleEntry(dest, "peerA")
	d.Insert(e1)
	e2 := e1
	e2.FeeRate = 0.05
	prior, hadPrior := d.Insert(e2)
	if !hadPrior || prior.FeeRate != 0.01 {
		t.Fatalf("expected prior entry with FeeRate 0.01, got %+v (hadPrior=%v)", prior, hadPrior)
	}
}

func TestDRTUpdate(t *testing.T) {
	d := NewDRT()
	dest := DID("did:gppn:key:dest")
	d.Insert(sampleEntry(dest, "peerA"))
	ok := d.Update(dest, "peerA", func(e *RouteEntry) { e.FeeRate = 0.5 })
	if !ok {
		t.Fatalf("expected update to find entry")
	}
	routes := d.GetRoutes(dest)
	if routes[0].FeeRate != 0.5 {
		t.Fatalf("expected updated fee rate, got %v", routes[0].FeeRate)
	}
	if d.Update(dest, "unknown", func(e *RouteEntry) {}) {
		t.Fatalf("expected update on unknown key to report false")
	}
}

func TestDRTRemoveExpired(t *testing.T) {
	d := NewDRT()
	dest := DID("did:gppn:key:dest")
	d.Insert(sampleEntry(dest, "peerA"))
	if n := d.RemoveExpired(1200); n != 0 {
		t.Fatalf("expected nothing expired yet, swept %d", n)
	}
	if n := d.RemoveExpired(1500); n != 1 {
		t.Fatalf("expected 1 swept at boundary, got %d", n)
	}
	if len(d.AllEntries()) != 0 {
		t.Fatalf("expected table empty after sweep")
	}
}

func TestDRTDestinations(t *testing.T) {
	d := NewDRT()
	d.Insert(sampleEntry(DID("did:gppn:key:a"), "p1"))
	d.Insert(sampleEntry(DID("did:gppn:key:a"), "p2"))
	d.Insert(sampleEntry(DID("did:gppn:key:b"), "p1"))
	dests := d.Destinations()
	if len(dests) != 2 {
		t.Fatalf("expected 2 distinct destinations, got %d", len(dests))
	}
}

func TestDRTIngestAdvertisementBoundsHops(t *testing.T) {
	d := NewDRT()
	adv := Advertisement{
		AdvertiserPeerID: "peerA",
		CreatedAt:        1000,
		TTL:              500,
		Destinations: []DestinationAnnouncement{
			{Destination: DID("did:gppn:key:a"), SupportedCurrencies: map[string]bool{"USD": true}, FeeRate: 0.1, TrustScore: 0.5, HopCount: 0},
			{Destination: DID("did:gppn:key:b"), SupportedCurrencies: map[string]bool{"USD": true}, FeeRate: 0.1, TrustScore: 0.5, HopCount: 5},
		},
	}
	installed, err := d.IngestAdvertisement(adv, 3)
	if err != nil {
		t.Fatalf("IngestAdvertisement: %v", err)
	}
	if installed != 1 {
		t.Fatalf("expected 1 installed (other exceeds maxHops), got %d", installed)
	}
}

func TestDRTIngestAdvertisementRejectsEmpty(t *testing.T) {
	d := NewDRT()
	if _, err := d.IngestAdvertisement(Advertisement{AdvertiserPeerID: "p"}, 3); err == nil {
		t.Fatalf("expected error for advertisement with no destinations")
	}
	if _, err := d.IngestAdvertisement(Advertisement{Destinations: []DestinationAnnouncement{{}}}, 3); err == nil {
		t.Fatalf("expected error for advertisement with no advertiser peer id")
	}
}

func TestDRTBuildAdvertisementIncrementsHopCount(t *testing.T) {
	d := NewDRT()
	d.Insert(sampleEntry(DID("did:gppn:key:a"), "p1"))
	adv := d.BuildAdvertisement(DID("did:gppn:key:self"), "selfpeer", 6, 2000, 1, 500)
	if len(adv.Destinations) != 1 {
		t.Fatalf("expected 1 destination announced, got %d", len(adv.Destinations))
	}
	if adv.Destinations[0].HopCount != 1 {
		t.Fatalf("expected hop count incremented to 1, got %d", adv.Destinations[0].HopCount)
	}
}
