package core

import (
	"container/heap"
	"math"
	"math/big"
)

// bigFloatFromInt converts a big.Int amount to a big.Float for the
// floating-point scoring math below; precision loss here is acceptable,
// this is a heuristic score, not a ledger balance.
func bigFloatFromInt(i *big.Int) *big.Float {
	if i == nil {
		return new(big.Float)
	}
	return new(big.Float).SetInt(i)
}

// ScoringWeights controls the composite route score. The four weights
// must sum to 1.0 within a 1e-6 tolerance; this is enforced once, at
// construction, and the struct is treated as immutable thereafter.
type ScoringWeights struct {
	Cost      float64
	Latency   float64
	Trust     float64
	Liquidity float64
}

// DefaultScoringWeights matches the spec's default 0.25/0.25/0.30/0.20
// split.
var DefaultScoringWeights = ScoringWeights{Cost: 0.25, Latency: 0.25, Trust: 0.30, Liquidity: 0.20}

// NewScoringWeights validates that the weights sum to 1.0 within 1e-6.
func NewScoringWeights(cost, latency, trust, liquidity float64) (ScoringWeights, error) {
	sum := cost + latency + trust + liquidity
	if math.Abs(sum-1.0) > 1e-6 {
		return ScoringWeights{}, ErrWeightsNotNormalized
	}
	return ScoringWeights{Cost: cost, Latency: latency, Trust: trust, Liquidity: liquidity}, nil
}

// RouteHop is one leg of a discovered Route.
type RouteHop struct {
	Destination   DID     `json:"destination"`
	NextHopPeerID string  `json:"next_hop_peer_id"`
	FeeRate       float64 `json:"fee_rate"`
	LatencyMs     float64 `json:"latency_ms"`
	TrustScore    float64 `json:"trust_score"`
}

// Route is a sequence of hops found by the pathfinder, plus its
// composite score.
type Route struct {
	Hops  []RouteHop `json:"hops"`
	Score float64    `json:"score"`
}

// HopCount returns the number of hops in the route.
func (r Route) HopCount() int { return len(r.Hops) }

type pathEdge struct {
	to            DID
	nextHopPeerID string
	feeRate       float64
	latencyMs     float64
	trustScore    float64
	liquidity     float64
}

// resolvePeerDID maps a next-hop peer id to a DID URI: if some entry's
// destination identifier equals the peer id, that DID is reused;
// otherwise a synthetic did:<ns>:<method>:<peerID> is minted, sampling
// ns/method from any existing destination DID.
func resolvePeerDID(entries []RouteEntry, peerID string) DID {
	sampleNS, sampleMethod := "gppn", "peer"
	for _, e := range entries {
		if parts, err := e.Destination.Parts(); err == nil {
			sampleNS, sampleMethod = parts.Namespace, parts.Method
			if parts.Identifier == peerID {
				return e.Destination
			}
		}
	}
	return NewDID(sampleNS, sampleMethod, peerID)
}

func buildGraph(entries []RouteEntry) map[DID][]pathEdge {
	graph := make(map[DID][]pathEdge)
	for _, e := range entries {
		from := resolvePeerDID(entries, e.NextHopPeerID)
		liquidity := 0.0
		if e.AvailableLiquidity != nil {
			f, _ := bigFloatFromInt(e.AvailableLiquidity).Float64()
			liquidity = f
		}
		graph[from] = append(graph[from], pathEdge{
			to:            e.Destination,
			nextHopPeerID: e.NextHopPeerID,
			feeRate:       e.FeeRate,
			latencyMs:     e.AvgLatencyMs,
			trustScore:    e.TrustScore,
			liquidity:     liquidity,
		})
	}
	return graph
}

type searchNode struct {
	node         DID
	path         []DID
	hops         []RouteHop
	totalCost    float64
	totalLatency float64
	minTrust     float64
	minLiquidity float64
	score        float64
	seq          int
}

type searchHeap []*searchNode

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	si, sj := h[i].score, h[j].score
	iNaN, jNaN := math.IsNaN(si), math.IsNaN(sj)
	if iNaN && jNaN {
		return h[i].seq < h[j].seq
	}
	if iNaN || jNaN {
		return h[i].seq < h[j].seq
	}
	if si == sj {
		return h[i].seq < h[j].seq
	}
	return si > sj // max-heap: higher score first
}
func (h searchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *searchHeap) Push(x interface{}) { *h = append(*h, x.(*searchNode)) }
func (h *searchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindRoutes runs a best-first (modified Dijkstra) search over the DRT
// for up to k routes from `from` to `to` carrying amount, sorted by
// descending composite score.
func FindRoutes(drt *DRT, from, to DID, amount Amount, k, maxHops int, minTrustThreshold float64, weights ScoringWeights) ([]Route, error) {
	all := drt.AllEntries()
	if len(all) == 0 {
		return nil, ErrEmptyRoutingTable
	}
	filtered := make([]RouteEntry, 0, len(all))
	for _, e := range all {
		if !e.SupportedCurrencies[amount.Currency.Code] {
			continue
		}
		if e.AvailableLiquidity == nil || amount.Value == nil || e.AvailableLiquidity.Cmp(amount.Value) < 0 {
			continue
		}
		filtered = append(filtered, e)
	}
	if len(filtered) == 0 {
		return nil, ErrInsufficientLiquidity
	}
	graph := buildGraph(filtered)

	amountF, _ := bigFloatFromInt(amount.Value).Float64()

	visitCount := make(map[DID]int)
	var found []Route
	seq := 0

	h := &searchHeap{}
	heap.Init(h)
	heap.Push(h, &searchNode{
		node:         from,
		path:         []DID{from},
		score:        math.Inf(1),
		minTrust:     1.0,
		minLiquidity: math.Inf(1),
		seq:          seq,
	})
	seq++

	for h.Len() > 0 {
		cur := heap.Pop(h).(*searchNode)

		if cur.node == to && len(cur.path) > 1 {
			found = append(found, Route{Hops: append([]RouteHop(nil), cur.hops...), Score: cur.score})
		}

		visitCount[cur.node]++
		if visitCount[cur.node] > k {
			continue
		}
		if len(cur.path) >= maxHops {
			continue
		}

		for _, edge := range graph[cur.node] {
			if edge.to == from {
				continue
			}
			dup := false
			for _, p := range cur.path {
				if p == edge.to {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			newMinTrust := math.Min(cur.minTrust, edge.trustScore)
			if newMinTrust < minTrustThreshold {
				continue
			}
			feeHop := math.Ceil(amountF * edge.feeRate)
			newCost := cur.totalCost + feeHop
			newLatency := cur.totalLatency + edge.latencyMs
			newMinLiquidity := math.Min(cur.minLiquidity, edge.liquidity)

			costComponent := 1.0 / (1.0 + newCost)
			latencyComponent := 1.0 / (1.0 + newLatency)
			trustComponent := newMinTrust
			liquidityComponent := newMinLiquidity / amountF
			if liquidityComponent > 1.0 {
				liquidityComponent = 1.0
			}
			score := weights.Cost*costComponent + weights.Latency*latencyComponent +
				weights.Trust*trustComponent + weights.Liquidity*liquidityComponent

			nextPath := append(append([]DID(nil), cur.path...), edge.to)
			nextHops := append(append([]RouteHop(nil), cur.hops...), RouteHop{
				Destination:   edge.to,
				NextHopPeerID: edge.nextHopPeerID,
				FeeRate:       edge.feeRate,
				LatencyMs:     edge.latencyMs,
				TrustScore:    edge.trustScore,
			})

			heap.Push(h, &searchNode{
				node:         edge.to,
				path:         nextPath,
				hops:         nextHops,
				totalCost:    newCost,
				totalLatency: newLatency,
				minTrust:     newMinTrust,
				minLiquidity: newMinLiquidity,
				score:        score,
				seq:          seq,
			})
			seq++
		}
	}

	if len(found) == 0 {
		return nil, ErrNoRouteFound
	}
	sortRoutesDescending(found)
	if len(found) > k {
		found = found[:k]
	}
	return found, nil
}


func sortRoutesDescending(routes []Route) {
	for i := 1; i < len(routes); i++ {
		j := i
		for j > 0 && less(routes[j].Score, routes[j-1].Score) {
			routes[j], routes[j-1] = routes[j-1], routes[j]
			j--
		}
	}
}

// less is the NaN-safe "should sort before" comparison: a NaN score is
// treated as equal to anything, so it never forces a swap.
func less(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}
