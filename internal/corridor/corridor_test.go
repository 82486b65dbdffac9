package corridor

import (
	"math"
	"testing"

	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/geometry"
	"github.com/nerevar/traclusdl/internal/queue"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// S1 — three parallel coincident lines: weighted mean start/end is the
// middle line, LINESTRING(0 1, 100 1).
func TestFromClusterWeightedAverage(t *testing.T) {
	seed := cluster.Member{
		TrajID: 1, SegmentID: 0, Weight: 1,
		Start: geometry.Point{X: 0, Y: 0}, Center: geometry.Point{X: 50, Y: 0},
	}
	m1 := cluster.Member{
		TrajID: 2, SegmentID: 0, Weight: 1,
		Start: geometry.Point{X: 0, Y: 1}, Center: geometry.Point{X: 50, Y: 1},
	}
	m2 := cluster.Member{
		TrajID: 3, SegmentID: 0, Weight: 1,
		Start: geometry.Point{X: 0, Y: 2}, Center: geometry.Point{X: 50, Y: 2},
	}

	c := cluster.NewCluster(cluster.Seed{Member: seed})
	c.Members = []cluster.Member{m1, m2}
	c.TotalWeight = 3

	cor := FromCluster(0, c)
	if cor.Weight != 3 {
		t.Errorf("weight = %d, want 3", cor.Weight)
	}
	if !almostEqual(cor.Start.X, 0) || !almostEqual(cor.Start.Y, 1) {
		t.Errorf("start = %v, want (0,1)", cor.Start)
	}
	if !almostEqual(cor.End.X, 100) || !almostEqual(cor.End.Y, 1) {
		t.Errorf("end = %v, want (100,1)", cor.End)
	}
}

// All three members point due east (angle 0); the corridor's mean angle
// should track that exactly and tightness should be near 1 (no spread).
func TestFromClusterAngleDiagnostics(t *testing.T) {
	seed := cluster.Member{
		TrajID: 1, SegmentID: 0, Weight: 1,
		Start: geometry.Point{X: 0, Y: 0}, Center: geometry.Point{X: 50, Y: 0},
	}
	m1 := cluster.Member{
		TrajID: 2, SegmentID: 0, Weight: 1,
		Start: geometry.Point{X: 0, Y: 1}, Center: geometry.Point{X: 50, Y: 1},
	}

	c := cluster.NewCluster(cluster.Seed{Member: seed})
	c.Members = []cluster.Member{m1}
	c.TotalWeight = 2

	cor := FromCluster(0, c)
	if !almostEqual(cor.MeanAngle, 0) {
		t.Errorf("MeanAngle = %v, want 0", cor.MeanAngle)
	}
	if cor.AngularTightness < 0.999 {
		t.Errorf("AngularTightness = %v, want close to 1 for identical angles", cor.AngularTightness)
	}
}

func TestFinalizeAssignsMonotonicIDsInPopOrder(t *testing.T) {
	q := queue.New()

	heavySeed := cluster.Member{TrajID: 1, SegmentID: 0, Weight: 10, Start: geometry.Point{X: 0, Y: 0}, Center: geometry.Point{X: 1, Y: 0}}
	lightSeed := cluster.Member{TrajID: 2, SegmentID: 0, Weight: 1, Start: geometry.Point{X: 500, Y: 500}, Center: geometry.Point{X: 501, Y: 500}}

	heavy := cluster.NewCluster(cluster.Seed{Member: heavySeed})
	heavy.TotalWeight = 10
	light := cluster.NewCluster(cluster.Seed{Member: lightSeed})
	light.TotalWeight = 1

	q.Push(light)
	q.Push(heavy)

	result := Finalize(q, 1)
	if len(result.Corridors) != 2 {
		t.Fatalf("expected 2 corridors, got %d", len(result.Corridors))
	}
	if result.Corridors[0].ID != 0 || result.Corridors[0].Weight != 10 {
		t.Errorf("first popped corridor should be the heaviest (id 0, weight 10), got %+v", result.Corridors[0])
	}
	if result.Corridors[1].ID != 1 || result.Corridors[1].Weight != 1 {
		t.Errorf("second popped corridor should be id 1, weight 1, got %+v", result.Corridors[1])
	}
}
