package cluster

import (
	"math"

	"github.com/nerevar/traclusdl/internal/geometry"
	"github.com/nerevar/traclusdl/internal/spatial"
)

const epsilon = 1e-9

// Params bundles the kernel's threshold configuration, carried down from
// the CLI (spec §6).
type Params struct {
	MaxDist     float64
	MinDensity  uint64
	MaxAngle    float64
	SegmentSize float64
}

// circularAngleDist is min(|a-b|, 360-|a-b|): the absolute value of
// spatial.AngularDifferenceDegrees, the signed circular difference in
// [-180, 180].
func circularAngleDist(a, b float64) float64 {
	return math.Abs(spatial.AngularDifferenceDegrees(a, b))
}

// Reachable builds the cluster reachable from seed against candidateTrajs,
// following spec §4.3: for every candidate trajectory whose angle and
// spatial distance to the seed satisfy the thresholds, add its nearest
// sub-segment as a candidate member. Returns nil if the accumulated weight
// doesn't meet minDensity.
func Reachable(seed Seed, candidateTrajs []geometry.Trajectory, p Params) *Cluster {
	c := NewCluster(seed)
	var localWeight uint64 = seed.Member.Weight

	for _, t := range candidateTrajs {
		if t.ID == seed.Member.TrajID {
			continue
		}

		d := circularAngleDist(seed.Angle, t.Angle)
		if d > p.MaxAngle+epsilon {
			continue
		}

		dist, segIdx := t.DistanceToPoint(seed.Member.Center)
		if dist > p.MaxDist+epsilon {
			continue
		}

		if len(t.Segments) == 0 {
			continue
		}

		member := NewMemberFromTrajectory(t, segIdx)
		c.Candidates = append(c.Candidates, member)
		localWeight += t.Weight
	}

	if localWeight < p.MinDensity {
		return nil
	}
	return c
}

// Expand repeatedly consumes cluster's candidate frontier until empty,
// following spec §4.4. candidateTrajs is the fixed neighbor snapshot
// captured once for the seed's bucket (spec §4.5) — it does not change as
// the cluster grows. Candidates are processed in reverse order — this is
// load-bearing for reproducing reference corridors on the same input, not
// a style choice (see design notes on reverse-order iteration).
func Expand(c *Cluster, candidateTrajs []geometry.Trajectory, p Params) {
	for len(c.Candidates) > 0 {
		var children []*Cluster

		for i := len(c.Candidates) - 1; i >= 0; i-- {
			candidate := c.Candidates[i]
			childSeed := Seed{Member: candidate, Angle: c.Seed.Angle}
			if child := Reachable(childSeed, candidateTrajs, p); child != nil {
				children = append(children, child)
			}
		}

		c.PromoteAllCandidates()

		for _, child := range children {
			c.MergeChild(child)
		}
	}
}
