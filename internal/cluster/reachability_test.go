package cluster

import (
	"testing"

	"github.com/nerevar/traclusdl/internal/geometry"
)

func seedFromFirstSegment(t geometry.Trajectory) Seed {
	return Seed{
		Member: NewMemberFromTrajectory(t, 0),
		Angle:  t.Angle,
	}
}

// S1 — three parallel coincident lines, density satisfied.
func TestReachableThreeParallelLinesSatisfyDensity(t *testing.T) {
	a := geometry.New(1, 1, geometry.Point{0, 0}, geometry.Point{100, 0}, 50)
	b := geometry.New(2, 1, geometry.Point{0, 1}, geometry.Point{100, 1}, 50)
	c := geometry.New(3, 1, geometry.Point{0, 2}, geometry.Point{100, 2}, 50)

	p := Params{MaxDist: 5, MinDensity: 3, MaxAngle: 1, SegmentSize: 50}
	all := []geometry.Trajectory{a, b, c}

	seed := seedFromFirstSegment(a)
	cl := Reachable(seed, all, p)
	if cl == nil {
		t.Fatal("expected a reachable cluster, got nil")
	}
	if cl.TotalWeight != 3 {
		t.Errorf("total weight = %d, want 3", cl.TotalWeight)
	}
	if len(cl.Candidates) != 2 {
		t.Errorf("candidates = %d, want 2 (b and c)", len(cl.Candidates))
	}
}

// S2 — two anti-parallel lines, angle rejects clustering.
func TestReachableAntiParallelLinesRejectedByAngle(t *testing.T) {
	a := geometry.New(1, 1, geometry.Point{0, 0}, geometry.Point{100, 0}, 50)
	b := geometry.New(2, 1, geometry.Point{100, 1}, geometry.Point{0, 1}, 50)

	p := Params{MaxDist: 5, MinDensity: 2, MaxAngle: 10, SegmentSize: 50}
	all := []geometry.Trajectory{a, b}

	seed := seedFromFirstSegment(a)
	cl := Reachable(seed, all, p)
	if cl != nil {
		t.Fatalf("expected no reachable cluster (angle diff ~180), got weight %d", cl.TotalWeight)
	}
}

// S4 — a single heavy trajectory satisfies density alone.
func TestReachableHeavySingleTrajectorySatisfiesDensity(t *testing.T) {
	a := geometry.New(1, 5, geometry.Point{0, 0}, geometry.Point{100, 0}, 50)

	p := Params{MaxDist: 1, MinDensity: 3, MaxAngle: 1, SegmentSize: 50}
	seed := seedFromFirstSegment(a)
	cl := Reachable(seed, []geometry.Trajectory{a}, p)
	if cl == nil {
		t.Fatal("expected heavy trajectory to satisfy density alone")
	}
	if cl.TotalWeight != 5 {
		t.Errorf("total weight = %d, want 5", cl.TotalWeight)
	}
}

func TestReachableBelowMinDensityReturnsNil(t *testing.T) {
	a := geometry.New(1, 1, geometry.Point{0, 0}, geometry.Point{100, 0}, 50)
	p := Params{MaxDist: 5, MinDensity: 3, MaxAngle: 1, SegmentSize: 50}
	seed := seedFromFirstSegment(a)
	cl := Reachable(seed, []geometry.Trajectory{a}, p)
	if cl != nil {
		t.Fatalf("expected nil below min_density, got weight %d", cl.TotalWeight)
	}
}

func TestPromoteAllCandidatesMaintainsInvariants(t *testing.T) {
	a := geometry.New(1, 1, geometry.Point{0, 0}, geometry.Point{100, 0}, 50)
	b := geometry.New(2, 1, geometry.Point{0, 1}, geometry.Point{100, 1}, 50)
	c := geometry.New(3, 1, geometry.Point{0, 2}, geometry.Point{100, 2}, 50)

	p := Params{MaxDist: 5, MinDensity: 1, MaxAngle: 1, SegmentSize: 50}
	seed := seedFromFirstSegment(a)
	cl := Reachable(seed, []geometry.Trajectory{a, b, c}, p)
	if cl == nil {
		t.Fatal("expected a cluster")
	}
	weightBefore := cl.TotalWeight
	cl.PromoteAllCandidates()

	if len(cl.Candidates) != 0 {
		t.Errorf("candidates should be empty after promotion, got %d", len(cl.Candidates))
	}
	if cl.TotalWeight != weightBefore {
		t.Errorf("promotion should not change total weight, before=%d after=%d", weightBefore, cl.TotalWeight)
	}
	seen := map[uint64]bool{cl.Seed.Member.TrajID: true}
	for _, m := range cl.Members {
		if seen[m.TrajID] {
			t.Fatalf("duplicate traj id %d across seed/members", m.TrajID)
		}
		seen[m.TrajID] = true
	}
}
