// Package corridor reduces a finalized cluster into a single representative
// weighted segment (C8) and drains the priority queue into the run's final
// corridor list and non-clustered segment list.
package corridor

import (
	"math"

	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/geometry"
	"github.com/nerevar/traclusdl/internal/queue"
	"github.com/nerevar/traclusdl/internal/spatial"
)

// Corridor is a finalized cluster reduced to one weighted directed segment.
// It carries the originating Cluster for downstream enumeration of its
// members in the segment export (spec §9's "Corridor takes ownership of
// the finalized Cluster" note).
type Corridor struct {
	ID      int
	Weight  uint64
	Start   geometry.Point
	End     geometry.Point
	Cluster *cluster.Cluster

	// MeanAngle and AngularTightness are diagnostics, not used by the line
	// geometry above: the circular mean of every member's own angle and how
	// tightly they cluster around it (1 = identical, 0 = scattered).
	MeanAngle        float64
	AngularTightness float64
}

// FromCluster builds a Corridor from a finalized cluster, id assigned by
// the caller in pop order. Start is the weight-weighted mean of
// {seed.start} ∪ {member.start}; End is the weight-weighted mean of the
// implied end points of the seed and every member (spec §3, §4.7).
func FromCluster(id int, c *cluster.Cluster) Corridor {
	var startSum, endSum geometry.WeightedSum

	seedWeight := float64(c.Seed.Member.Weight)
	startSum.Add(c.Seed.Member.Start, seedWeight)
	endSum.Add(c.Seed.Member.End(), seedWeight)

	angles := make([]float64, 0, len(c.Members)+1)
	anglesRad := make([]float64, 0, len(c.Members)+1)
	weights := make([]float64, 0, len(c.Members)+1)

	angles = append(angles, c.Seed.Member.Angle())
	anglesRad = append(anglesRad, c.Seed.Member.Angle()*math.Pi/180)
	weights = append(weights, seedWeight)

	for _, m := range c.Members {
		w := float64(m.Weight)
		startSum.Add(m.Start, w)
		endSum.Add(m.End(), w)

		angles = append(angles, m.Angle())
		anglesRad = append(anglesRad, m.Angle()*math.Pi/180)
		weights = append(weights, w)
	}

	return Corridor{
		ID:               id,
		Weight:           c.TotalWeight,
		Start:            startSum.Mean(),
		End:              endSum.Mean(),
		Cluster:          c,
		MeanAngle:        spatial.CircularMeanDegrees(angles, weights),
		AngularTightness: spatial.MeanResultantLength(anglesRad, weights),
	}
}

// Result is the finalized output of the clustering run: every surviving
// corridor plus the sub-segments that never joined one.
type Result struct {
	Corridors    []Corridor
	NonClustered []cluster.Member
}

// Finalize drains q via PopAndClean(minDensity) until empty, turning each
// popped cluster into a Corridor with monotonically assigned ids in pop
// order (spec §4.7 — ids by descending rank).
func Finalize(q *queue.Queue, minDensity uint64) Result {
	var corridors []Corridor
	id := 0
	for {
		c, ok := q.PopAndClean(minDensity)
		if !ok {
			break
		}
		corridors = append(corridors, FromCluster(id, c))
		id++
	}
	return Result{Corridors: corridors, NonClustered: q.NonClustered()}
}
