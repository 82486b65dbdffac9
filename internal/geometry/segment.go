package geometry

// Segment is one fixed-length piece of a Trajectory. It is stored as
// {start, middle} rather than {start, end}: the end point is always
// derivable as start + 2*(middle - start), and storing it this way mirrors
// how a trajectory is built — by walking outward from a running start in
// equal steps and recording each segment's midpoint.
type Segment struct {
	ID     int
	Start  Point
	Middle Point
}

// NewSegment builds a Segment from its start and end points, deriving the
// midpoint.
func NewSegment(id int, start, end Point) Segment {
	return Segment{
		ID:     id,
		Start:  start,
		Middle: Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2},
	}
}

// End returns the segment's derived end point.
func (s Segment) End() Point {
	return Point{
		X: s.Start.X + 2*(s.Middle.X-s.Start.X),
		Y: s.Start.Y + 2*(s.Middle.Y-s.Start.Y),
	}
}

// Length returns the Euclidean distance from start to the derived end.
func (s Segment) Length() float64 {
	return Distance(s.Start, s.End())
}
