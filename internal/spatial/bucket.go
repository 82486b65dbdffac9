package spatial

import (
	"math"

	"github.com/nerevar/traclusdl/internal/geometry"
)

// AngleBucket holds every trajectory whose direction angle falls in the
// half-open interval [AngleStart, AngleEnd).
type AngleBucket struct {
	AngleStart   float64
	AngleEnd     float64
	Trajectories []geometry.Trajectory
}

// AngleBucketedStore indexes trajectories by direction angle in fixed-width
// buckets, so the reachability kernel can prune its candidate set to the
// handful of trajectories whose angle could possibly satisfy max_angle,
// instead of scanning every trajectory in the input.
type AngleBucketedStore struct {
	bucketSize float64
	buckets    []AngleBucket
}

// NewAngleBucketedStore constructs a store with bucket_size = bucketSize.
// The number of buckets is ceil(360/bucketSize); the last bucket is
// truncated to end at exactly 360 when bucketSize does not divide 360
// evenly.
func NewAngleBucketedStore(bucketSize float64) *AngleBucketedStore {
	if bucketSize <= 0 || bucketSize > 360 {
		panic("spatial: bucket_size must be in (0, 360]")
	}

	n := int(math.Ceil(360 / bucketSize))
	buckets := make([]AngleBucket, n)
	for i := 0; i < n; i++ {
		start := float64(i) * bucketSize
		end := start + bucketSize
		if i == n-1 || end > 360 {
			end = 360
		}
		buckets[i] = AngleBucket{AngleStart: start, AngleEnd: end}
	}

	return &AngleBucketedStore{bucketSize: bucketSize, buckets: buckets}
}

// bucketOf normalizes angle into [0,360) and returns the index of the
// bucket containing it.
func (s *AngleBucketedStore) bucketOf(angle float64) int {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	idx := int(a / s.bucketSize)
	if idx >= len(s.buckets) {
		idx = len(s.buckets) - 1
	}
	return idx
}

// Add inserts a trajectory into the bucket containing its angle.
func (s *AngleBucketedStore) Add(t geometry.Trajectory) {
	idx := s.bucketOf(t.Angle)
	s.buckets[idx].Trajectories = append(s.buckets[idx].Trajectories, t)
}

// Buckets returns the store's buckets in index order, for the discovery
// pass to walk.
func (s *AngleBucketedStore) Buckets() []AngleBucket {
	return s.buckets
}

func (s *AngleBucketedStore) wrap(idx int) int {
	n := len(s.buckets)
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

// Nearby returns every trajectory in the bucket containing theta and its
// two angular neighbors. When the last bucket is narrower than bucket_size
// (because bucket_size didn't divide 360 evenly) and theta falls in the
// second-to-last bucket, the bucket two steps ahead is also included — it
// is the short last bucket's other neighbor, and without this rule a
// trajectory just inside the short bucket could be missed.
func (s *AngleBucketedStore) Nearby(theta float64) []geometry.Trajectory {
	idx := s.bucketOf(theta)
	n := len(s.buckets)

	indexes := []int{s.wrap(idx - 1), idx, s.wrap(idx + 1)}

	lastBucket := s.buckets[n-1]
	lastBucketWidth := lastBucket.AngleEnd - lastBucket.AngleStart
	isSecondToLast := idx == n-2
	if isSecondToLast && lastBucketWidth < s.bucketSize {
		indexes = append(indexes, s.wrap(idx+2))
	}

	var out []geometry.Trajectory
	for _, i := range indexes {
		out = append(out, s.buckets[i].Trajectories...)
	}
	return out
}
