package geometry

import "math"

// angleEpsilon guards the segment-count floor against a length/segmentSize
// ratio landing just below an integer due to floating-point error (e.g.
// 500.0/250.0 coming out as 1.9999999999999998 instead of 2.0).
const angleEpsilon = 1e-9

// Trajectory is one OD line after subdivision into equal-length, fixed-size
// sub-segments. Weight is kept wider than the reference implementation's
// u32 (spec §4.3) to absorb aggregation of many heavy OD lines without
// overflow, without changing any comparison semantics.
type Trajectory struct {
	ID          uint64
	Start       Point
	End         Point
	Weight      uint64
	Angle       float64
	SegmentSize float64
	Length      float64
	Segments    []Segment
}

// New builds a Trajectory from a raw OD line and a configured segment size,
// computing its angle and dividing it into fixed-length sub-segments.
func New(id, weight uint64, start, end Point, segmentSize float64) Trajectory {
	t := Trajectory{
		ID:          id,
		Start:       start,
		End:         end,
		Weight:      weight,
		SegmentSize: segmentSize,
	}
	t.Angle = spatialAngle(start, end)
	t.Length = Distance(start, end)
	t.Segments = makeSegments(start, end, t.Length, segmentSize)
	return t
}

// spatialAngle computes atan2(end.y-start.y, end.x-start.x) in degrees,
// normalized to [0,360) and rounded to two decimals. The degenerate case
// (start == end) falls to atan2(0,0) = 0 by Go's math.Atan2 convention.
func spatialAngle(start, end Point) float64 {
	a := math.Atan2(end.Y-start.Y, end.X-start.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return math.Round(a*100) / 100
}

// makeSegments lays fixed-length sub-segments from start toward end. A
// trajectory shorter than one segment yields an empty slice; any remainder
// shorter than segmentSize past the last full sub-segment is dropped, per
// the "equal-length" invariant (spec §3).
func makeSegments(start, end Point, length, segmentSize float64) []Segment {
	if length == 0 || segmentSize <= 0 {
		return nil
	}

	n := int(math.Floor(length/segmentSize + angleEpsilon))
	if n <= 0 {
		return nil
	}

	dir := Point{X: (end.X - start.X) / length, Y: (end.Y - start.Y) / length}
	segments := make([]Segment, n)
	cur := start
	for i := 0; i < n; i++ {
		segEnd := Point{
			X: start.X + dir.X*segmentSize*float64(i+1),
			Y: start.Y + dir.Y*segmentSize*float64(i+1),
		}
		segments[i] = NewSegment(i, cur, segEnd)
		cur = segEnd
	}
	return segments
}

// DistanceToPoint computes the perpendicular distance from p to the
// trajectory's line (clamped to the segment between start and end), and the
// index of the nearest sub-segment. It allocates nothing: this runs on
// every inner-loop iteration of the reachability kernel.
//
// The degenerate case (start == end) falls back to point distance from
// start, reporting sub-segment index 0.
func (t Trajectory) DistanceToPoint(p Point) (dist float64, segIdx int) {
	dx := t.End.X - t.Start.X
	dy := t.End.Y - t.Start.Y
	lengthSq := dx*dx + dy*dy

	if lengthSq == 0 {
		return Distance(t.Start, p), 0
	}

	px := p.X - t.Start.X
	py := p.Y - t.Start.Y
	proj := (px*dx + py*dy) / lengthSq

	tClamped := proj
	if tClamped < 0 {
		tClamped = 0
	} else if tClamped > 1 {
		tClamped = 1
	}

	near := Point{X: t.Start.X + tClamped*dx, Y: t.Start.Y + tClamped*dy}
	dist = Distance(near, p)

	numSegs := len(t.Segments)
	if numSegs == 0 || t.SegmentSize <= 0 {
		return dist, 0
	}

	idx := int(tClamped * (t.Length / t.SegmentSize))
	if idx < 0 {
		idx = 0
	}
	if idx > numSegs-1 {
		idx = numSegs - 1
	}
	return dist, idx
}
