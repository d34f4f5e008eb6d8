package core

import (
	"math"
	"sync"
)

const trustDampingFactor = 0.15

// TrustGraph holds directed weighted trust edges in a concurrent map
// keyed by (from, to). Weights are restricted to [-1, 1].
type TrustGraph struct {
	mu    sync.RWMutex
	edges map[string]TrustEdge
}

// NewTrustGraph returns an empty trust graph.
func NewTrustGraph() *TrustGraph {
	return &TrustGraph{edges: make(map[string]TrustEdge)}
}

func edgeKey(from, to DID) string { return string(from) + "|" + string(to) }

// AddEdge inserts or replaces the edge (from, to). Fails if weight is
// outside [-1, 1].
func (g *TrustGraph) AddEdge(e TrustEdge) error {
	if e.Weight < -1 || e.Weight > 1 {
		return ErrWeightOutOfRange
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges[edgeKey(e.From, e.To)] = e
	return nil
}

// Edge returns the edge (from, to), if present.
func (g *TrustGraph) Edge(from, to DID) (TrustEdge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[edgeKey(from, to)]
	return e, ok
}

// AllEdges returns a point-in-time snapshot of every edge.
func (g *TrustGraph) AllEdges() []TrustEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]TrustEdge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// ComputeScores runs damped power iteration (EigenTrust-flavoured) over
// the positive-weight subgraph and returns a normalized score per DID.
// Stops after maxIter iterations or when the max per-component change
// drops below convergenceThreshold.
func (g *TrustGraph) ComputeScores(maxIter int, convergenceThreshold float64) map[DID]float64 {
	edges := g.AllEdges()

	indexOf := make(map[DID]int)
	order := make([]DID, 0)
	addDID := func(d DID) {
		if _, ok := indexOf[d]; !ok {
			indexOf[d] = len(order)
			order = append(order, d)
		}
	}
	for _, e := range edges {
		addDID(e.From)
		addDID(e.To)
	}
	n := len(order)
	if n == 0 {
		return map[DID]float64{}
	}

	// Row-normalized adjacency over positive weights only.
	rowSum := make([]float64, n)
	type adj struct {
		to     int
		weight float64
	}
	adjacency := make([][]adj, n)
	for _, e := range edges {
		if e.Weight <= 0 {
			continue
		}
		i, j := indexOf[e.From], indexOf[e.To]
		adjacency[i] = append(adjacency[i], adj{to: j, weight: e.Weight})
		rowSum[i] += e.Weight
	}
	for i := range adjacency {
		if rowSum[i] == 0 {
			continue
		}
		for k := range adjacency[i] {
			adjacency[i][k].weight /= rowSum[i]
		}
	}

	score := make([]float64, n)
	preTrust := make([]float64, n)
	for i := range score {
		score[i] = 1.0 / float64(n)
		preTrust[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			for _, e := range adjacency[i] {
				next[e.to] += score[i] * e.weight
			}
		}
		for j := 0; j < n; j++ {
			next[j] = trustDampingFactor*preTrust[j] + (1-trustDampingFactor)*next[j]
		}
		// L1 normalize.
		sum := 0.0
		for _, v := range next {
			sum += v
		}
		if sum > 0 {
			for j := range next {
				next[j] /= sum
			}
		}
		maxChange := 0.0
		for j := range next {
			if d := math.Abs(next[j] - score[j]); d > maxChange {
				maxChange = d
			}
		}
		score = next
		if maxChange < convergenceThreshold {
			break
		}
	}

	out := make(map[DID]float64, n)
	for did, idx := range indexOf {
		out[did] = score[idx]
	}
	return out
}

// TrustScoreInputs are the raw, un-clamped reputation signals combined
// into a composite TrustScore.
type TrustScoreInputs struct {
	UptimeRatio    float64
	SuccessRate    float64
	AvgLatencyMs   float64
	VolumeRatio    float64
	AgeRatio       float64
	Attestations   float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CompositeTrustScore blends the weighted reputation signals of §4.5
// into a single [0,1] score. Each input is clamped into [0,1] before
// weighting.
func CompositeTrustScore(in TrustScoreInputs) float64 {
	uptime := clamp01(in.UptimeRatio)
	success := clamp01(in.SuccessRate)
	latencyScore := clamp01(1 - in.AvgLatencyMs/10000)
	volume := clamp01(in.VolumeRatio)
	age := clamp01(in.AgeRatio)
	attestations := clamp01(in.Attestations)

	return 0.20*uptime + 0.25*success + 0.15*latencyScore +
		0.15*volume + 0.10*age + 0.15*attestations
}
