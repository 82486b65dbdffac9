// Package queue implements the cluster priority queue (C7): it ranks
// discovered clusters by weight and compactness, and turns "pop the
// heaviest" into a greedy partition of sub-segments across corridors by
// invalidating every overlapping candidate as each cluster is popped.
package queue

import (
	"sort"

	"github.com/nerevar/traclusdl/internal/cluster"
)

type memberKey struct {
	TrajID    uint64
	SegmentID int
}

func keyOf(m cluster.Member) memberKey {
	return memberKey{TrajID: m.TrajID, SegmentID: m.SegmentID}
}

// Queue holds every discovered cluster plus every sub-segment seen during
// discovery as a provisional non-clustered member (spec §4.6).
type Queue struct {
	clusters     []*cluster.Cluster
	dirty        bool
	nonClustered []cluster.Member
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push adds a discovered cluster and marks the queue for re-sorting.
func (q *Queue) Push(c *cluster.Cluster) {
	q.clusters = append(q.clusters, c)
	q.dirty = true
}

// PushNonClustered records a sub-segment as provisionally non-clustered.
func (q *Queue) PushNonClustered(m cluster.Member) {
	q.nonClustered = append(q.nonClustered, m)
}

// NonClustered returns the sub-segments that remain non-clustered as of the
// last PopAndClean call.
func (q *Queue) NonClustered() []cluster.Member {
	return q.nonClustered
}

// Len reports the number of clusters still in the queue.
func (q *Queue) Len() int {
	return len(q.clusters)
}

func (q *Queue) sortIfDirty() {
	if !q.dirty {
		return
	}
	sort.SliceStable(q.clusters, func(i, j int) bool {
		a, b := q.clusters[i], q.clusters[j]
		if a.TotalWeight != b.TotalWeight {
			return a.TotalWeight > b.TotalWeight
		}
		return a.SumDistance < b.SumDistance
	})
	q.dirty = false
}

// PopAndClean removes and returns the heaviest cluster, then invalidates
// every overlapping candidate cluster and non-clustered entry against it,
// following spec §4.6 exactly (including the short-circuit discard as soon
// as a surviving cluster's weight drops below threshold).
func (q *Queue) PopAndClean(threshold uint64) (*cluster.Cluster, bool) {
	if len(q.clusters) == 0 {
		return nil, false
	}
	q.sortIfDirty()

	w := q.clusters[0]
	q.clusters = q.clusters[1:]

	used := make(map[memberKey]bool, len(w.Members)+1)
	used[keyOf(w.Seed.Member)] = true
	for _, m := range w.Members {
		used[keyOf(m)] = true
	}

	kept := make([]*cluster.Cluster, 0, len(q.clusters))
	for _, qc := range q.clusters {
		if used[keyOf(qc.Seed.Member)] {
			continue
		}

		survives := true
		remaining := make([]cluster.Member, 0, len(qc.Members))
		for _, m := range qc.Members {
			if used[keyOf(m)] {
				qc.TotalWeight -= m.Weight
				if qc.TotalWeight < threshold {
					survives = false
					break
				}
				continue
			}
			remaining = append(remaining, m)
		}
		if !survives || qc.TotalWeight < threshold {
			continue
		}

		qc.Members = remaining
		kept = append(kept, qc)
	}
	q.clusters = kept

	remainingNonClustered := make([]cluster.Member, 0, len(q.nonClustered))
	for _, m := range q.nonClustered {
		if !used[keyOf(m)] {
			remainingNonClustered = append(remainingNonClustered, m)
		}
	}
	q.nonClustered = remainingNonClustered

	q.dirty = true
	return w, true
}
