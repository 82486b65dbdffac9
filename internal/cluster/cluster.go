package cluster

import "github.com/nerevar/traclusdl/internal/geometry"

// Cluster is the in-flight working set grown from a seed: its seed and
// promoted members form the surviving core, candidates are the frontier
// still being expanded.
type Cluster struct {
	Seed        Seed
	Members     []Member
	Candidates  []Member
	TotalWeight uint64
	SumDistance float64
}

// NewCluster seeds a cluster with no members or candidates yet; the caller
// (the reachability kernel) appends candidates as it scans trajectories.
func NewCluster(seed Seed) *Cluster {
	return &Cluster{
		Seed:        seed,
		TotalWeight: seed.Member.Weight,
	}
}

// ContainsTraj reports whether trajID already appears in the seed, members,
// or candidates — the invariant that keeps every trajectory id unique
// across a cluster's lifetime.
func (c *Cluster) ContainsTraj(trajID uint64) bool {
	if c.Seed.Member.TrajID == trajID {
		return true
	}
	for _, m := range c.Members {
		if m.TrajID == trajID {
			return true
		}
	}
	for _, m := range c.Candidates {
		if m.TrajID == trajID {
			return true
		}
	}
	return false
}

// ContainsSegment reports whether (trajID, segmentID) already appears in
// the seed or members.
func (c *Cluster) ContainsSegment(trajID uint64, segmentID int) bool {
	if c.Seed.Member.TrajID == trajID && c.Seed.Member.SegmentID == segmentID {
		return true
	}
	for _, m := range c.Members {
		if m.TrajID == trajID && m.SegmentID == segmentID {
			return true
		}
	}
	return false
}

// PromoteAllCandidates moves every candidate into members, back to front,
// maintaining TotalWeight and incrementally updating SumDistance by adding
// the distance from each promoted member's start to every member already
// present in Members when it is promoted (spec §3, §4.4 step 3 — the seed
// itself is not part of this sum).
func (c *Cluster) PromoteAllCandidates() {
	for i := len(c.Candidates) - 1; i >= 0; i-- {
		promoted := c.Candidates[i]
		for _, already := range c.Members {
			c.SumDistance += geometry.Distance(promoted.Start, already.Start)
		}
		c.Members = append(c.Members, promoted)
		c.TotalWeight += promoted.Weight
	}
	c.Candidates = c.Candidates[:0]
}

// MergeChild folds a child cluster's candidates into the parent's frontier:
// only candidates whose trajectory isn't already represented in the parent
// are appended. Child members are never copied — merging pulls only the new
// frontier (spec §4.4 step 4).
func (c *Cluster) MergeChild(child *Cluster) {
	for _, cand := range child.Candidates {
		if !c.ContainsTraj(cand.TrajID) {
			c.Candidates = append(c.Candidates, cand)
		}
	}
}
