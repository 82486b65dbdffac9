package geometry

// ODLine is one parsed line of the input file, before it is subdivided into
// a Trajectory. Kept distinct from Trajectory so the ingest package has a
// plain data carrier to build and validate before handing it to New.
type ODLine struct {
	ID     uint64
	Weight uint64
	Start  Point
	End    Point
}

// ToTrajectory subdivides the OD line into a Trajectory using the given
// sub-segment length.
func (o ODLine) ToTrajectory(segmentSize float64) Trajectory {
	return New(o.ID, o.Weight, o.Start, o.End, segmentSize)
}
