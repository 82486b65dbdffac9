// Package cluster implements the in-flight cluster data model (C4) and the
// reachability/expansion kernel (C5) that grows a cluster from a seed
// sub-segment.
package cluster

import (
	"math"

	"github.com/nerevar/traclusdl/internal/geometry"
)

// Member is one sub-segment participating in a cluster.
type Member struct {
	TrajID    uint64
	SegmentID int
	Weight    uint64
	Center    geometry.Point
	Start     geometry.Point
}

// End returns the sub-segment's implied end point, center + (center-start).
func (m Member) End() geometry.Point {
	return geometry.Point{
		X: m.Center.X + (m.Center.X - m.Start.X),
		Y: m.Center.Y + (m.Center.Y - m.Start.Y),
	}
}

// Angle returns atan2(center.y-start.y, center.x-start.x) in degrees,
// unnormalized (may be negative). This is the per-member angle reported in
// the new-format segment export, distinct from the trajectory's normalized
// Angle used for bucketing and the reachability predicate.
func (m Member) Angle() float64 {
	return math.Atan2(m.Center.Y-m.Start.Y, m.Center.X-m.Start.X) * 180 / math.Pi
}

// NewMemberFromTrajectory builds a Member from a trajectory's sub-segment.
func NewMemberFromTrajectory(t geometry.Trajectory, segIdx int) Member {
	seg := t.Segments[segIdx]
	return Member{
		TrajID:    t.ID,
		SegmentID: seg.ID,
		Weight:    t.Weight,
		Center:    seg.Middle,
		Start:     seg.Start,
	}
}

// Seed is the member a cluster grows from, paired with the originating
// trajectory's angle — used for every angle comparison during expansion,
// never the candidate's own angle (spec §4.4).
type Seed struct {
	Member Member
	Angle  float64
}
