package queue

import (
	"testing"

	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/geometry"
)

func member(trajID uint64, segID int, weight uint64, x, y float64) cluster.Member {
	return cluster.Member{
		TrajID:    trajID,
		SegmentID: segID,
		Weight:    weight,
		Start:     geometry.Point{X: x, Y: y},
		Center:    geometry.Point{X: x + 1, Y: y},
	}
}

func clusterOf(seed cluster.Member, members ...cluster.Member) *cluster.Cluster {
	c := cluster.NewCluster(cluster.Seed{Member: seed})
	total := seed.Weight
	for _, m := range members {
		c.Members = append(c.Members, m)
		total += m.Weight
	}
	c.TotalWeight = total
	return c
}

// S5-style scenario: popping the heaviest cluster invalidates every
// overlapping candidate, so no second cluster can survive on the same
// sub-segments.
func TestPopAndCleanInvalidatesOverlappingClusters(t *testing.T) {
	q := New()

	heavy := clusterOf(member(1, 0, 10, 0, 1), member(2, 0, 1, 0, 0), member(3, 0, 1, 0, 2))
	overlapping := clusterOf(member(4, 0, 1, 10, 1), member(2, 0, 1, 0, 0))

	q.Push(heavy)
	q.Push(overlapping)

	popped, ok := q.PopAndClean(3)
	if !ok {
		t.Fatal("expected a popped cluster")
	}
	if popped.TotalWeight != 12 {
		t.Errorf("popped weight = %d, want 12", popped.TotalWeight)
	}
	if q.Len() != 0 {
		t.Errorf("expected overlapping cluster to be invalidated, queue len = %d", q.Len())
	}
}

func TestPopAndCleanPopsHeaviestFirst(t *testing.T) {
	q := New()

	light := clusterOf(member(1, 0, 2, 0, 0))
	heavier := clusterOf(member(2, 0, 5, 100, 100))
	q.Push(light)
	q.Push(heavier)

	popped, ok := q.PopAndClean(1)
	if !ok || popped.TotalWeight != 5 {
		t.Fatalf("expected heaviest cluster (weight 5) first, got %+v", popped)
	}
}

func TestPopAndCleanRemovesUsedNonClusteredEntries(t *testing.T) {
	q := New()
	heavy := clusterOf(member(1, 0, 5, 0, 0))
	q.Push(heavy)
	q.PushNonClustered(member(1, 0, 5, 0, 0))
	q.PushNonClustered(member(9, 0, 1, 50, 50))

	_, ok := q.PopAndClean(1)
	if !ok {
		t.Fatal("expected a popped cluster")
	}
	remaining := q.NonClustered()
	if len(remaining) != 1 || remaining[0].TrajID != 9 {
		t.Errorf("expected only traj 9 left non-clustered, got %+v", remaining)
	}
}

func TestPopAndCleanOnEmptyQueue(t *testing.T) {
	q := New()
	_, ok := q.PopAndClean(1)
	if ok {
		t.Error("expected no pop from an empty queue")
	}
}
