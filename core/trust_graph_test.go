package core

import (
	"math"
	"testing"
)

func TestTrustGraphAddEdgeRejectsOutOfRangeWeight(t *testing.T) {
	g := NewTrustGraph()
	if err := g.AddEdge(TrustEdge{From: "a", To: "b", Weight: 1.5}); err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange, got %v", err)
	}
	if err := g.AddEdge(TrustEdge{From: "a", To: "b", Weight: -1.5}); err != ErrWeightOutOfRange {
		t.Fatalf("expected ErrWeightOutOfRange, got %v", err)
	}
}

func TestTrustGraphAddEdgeAndRetrieve(t *testing.T) {
	g := NewTrustGraph()
	if err := g.AddEdge(TrustEdge{From: "a", To: "b", Weight: 0.8}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	e, ok := g.Edge("a", "b")
	if !ok || e.Weight != 0.8 {
		t.Fatalf("expected edge with weight 0.8, got %+v", e)
	}
	if len(g.AllEdges()) != 1 {
		t.Fatalf("expected 1 edge")
	}
}

func TestTrustGraphComputeScoresConverges(t *testing.T) {
	g := NewTrustGraph()
	g.AddEdge(TrustEdge{From: "a", To: "b", Weight: 1.0})
	g.AddEdge(TrustEdge{From: "b", To: "c", Weight: 1.0})
	g.AddEdge(TrustEdge{From: "c", To: "a", Weight: 1.0})

	scores := g.ComputeScores(100, 1e-9)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scored nodes, got %d", len(scores))
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("expected scores to sum to ~1.0, got %v", sum)
	}
	// A symmetric 3-cycle should converge to roughly equal scores.
	for did, s := range scores {
		if math.Abs(s-1.0/3.0) > 1e-3 {
			t.Fatalf("expected near-uniform score for %s, got %v", did, s)
		}
	}
}

func TestTrustGraphComputeScoresEmpty(t *testing.T) {
	g := NewTrustGraph()
	scores := g.ComputeScores(10, 1e-6)
	if len(scores) != 0 {
		t.Fatalf("expected empty scores for empty graph")
	}
}

func TestCompositeTrustScoreClampsInputs(t *testing.T) {
	score := CompositeTrustScore(TrustScoreInputs{
		UptimeRatio:  2.0,
		SuccessRate:  1.0,
		AvgLatencyMs: 0,
		VolumeRatio:  1.0,
		AgeRatio:     1.0,
		Attestations: 1.0,
	})
	if score < 0 || score > 1 {
		t.Fatalf("expected composite score in [0,1], got %v", score)
	}
	perfect := CompositeTrustScore(TrustScoreInputs{1, 1, 0, 1, 1, 1})
	if math.Abs(perfect-1.0) > 1e-9 {
		t.Fatalf("expected perfect inputs to score 1.0, got %v", perfect)
	}
}
