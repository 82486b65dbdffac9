// Package discovery walks every angle bucket, tries every sub-segment of
// every trajectory as a seed, and invokes the reachability kernel,
// collecting every density-satisfying cluster (C6). Serial and parallel
// variants are provided; both produce the same per-trajectory results,
// since each trajectory's cluster list is a pure function of the shared
// read-only store and the configuration (spec §4.5, §5).
package discovery

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/geometry"
	"github.com/nerevar/traclusdl/internal/spatial"
)

// ProgressFunc is invoked after each trajectory finishes processing, with
// the cumulative count of trajectories done. It must be thread-safe and
// cheap: the parallel variant calls it from worker goroutines.
type ProgressFunc func(trajectoriesDone int)

// Outcome is the raw result of a discovery pass: every cluster that
// survived the density threshold, plus every sub-segment seen — the
// provisional non-clustered candidate list the priority queue will refine.
type Outcome struct {
	Clusters        []*cluster.Cluster
	NonClusteredAll []cluster.Member
}

func clustersForTrajectory(t geometry.Trajectory, nearby []geometry.Trajectory, p cluster.Params) ([]*cluster.Cluster, []cluster.Member) {
	var clusters []*cluster.Cluster
	members := make([]cluster.Member, 0, len(t.Segments))

	for segIdx := range t.Segments {
		m := cluster.NewMemberFromTrajectory(t, segIdx)
		members = append(members, m)

		seed := cluster.Seed{Member: m, Angle: t.Angle}
		c := cluster.Reachable(seed, nearby, p)
		if c == nil {
			continue
		}
		cluster.Expand(c, nearby, p)
		clusters = append(clusters, c)
	}

	return clusters, members
}

// Serial runs discovery single-threaded, bucket by bucket, trajectory by
// trajectory, in order.
func Serial(store *spatial.AngleBucketedStore, p cluster.Params, progress ProgressFunc) Outcome {
	var out Outcome
	done := 0

	for _, bucket := range store.Buckets() {
		nearby := store.Nearby(bucket.AngleStart)
		for _, t := range bucket.Trajectories {
			clusters, members := clustersForTrajectory(t, nearby, p)
			out.Clusters = append(out.Clusters, clusters...)
			out.NonClusteredAll = append(out.NonClusteredAll, members...)

			done++
			if progress != nil {
				progress(done)
			}
		}
	}

	return out
}

// Parallel runs discovery over a fixed-size worker pool (golang.org/x/sync's
// errgroup, capped via SetLimit — the work-stealing pool of spec §5).
// The loop over buckets runs in the calling goroutine: it captures each
// bucket's neighbor snapshot once, then dispatches every trajectory of that
// bucket as its own task, so trajectories of different buckets run
// concurrently but buckets are not tasks themselves. Each trajectory's
// result is gathered into its own slot so the final flatten is
// deterministic regardless of completion order. The queue itself is never
// touched until after the pool drains (spec §4.5, §5).
func Parallel(store *spatial.AngleBucketedStore, p cluster.Params, workers int, progress ProgressFunc) Outcome {
	buckets := store.Buckets()

	type slot struct {
		clusters []*cluster.Cluster
		members  []cluster.Member
	}

	// One slot per trajectory across all buckets, indexed so the flatten
	// below never depends on goroutine completion order.
	var totalTrajs int
	offsets := make([]int, len(buckets))
	for i, b := range buckets {
		offsets[i] = totalTrajs
		totalTrajs += len(b.Trajectories)
	}
	slots := make([]slot, totalTrajs)

	var doneCount int64
	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for bi, bucket := range buckets {
		bucket := bucket
		nearby := store.Nearby(bucket.AngleStart)
		base := offsets[bi]

		for ti, t := range bucket.Trajectories {
			t := t
			idx := base + ti
			g.Go(func() error {
				clusters, members := clustersForTrajectory(t, nearby, p)
				slots[idx] = slot{clusters: clusters, members: members}

				n := atomic.AddInt64(&doneCount, 1)
				if progress != nil {
					progress(int(n))
				}
				return nil
			})
		}
	}

	// Errors are never produced by clustersForTrajectory (pure computation
	// over a read-only store); Wait only serves as the discovery barrier.
	_ = g.Wait()

	var out Outcome
	for _, s := range slots {
		out.Clusters = append(out.Clusters, s.clusters...)
		out.NonClusteredAll = append(out.NonClusteredAll, s.members...)
	}
	return out
}
