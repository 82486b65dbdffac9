// Package geometry holds the planar primitives the clustering core is
// built on: points, directed fixed-length segments, and the trajectories
// they subdivide.
package geometry

import "github.com/golang/geo/r2"

// Point is a planar coordinate. The core never projects or reprojects it;
// any geographic-to-planar conversion happens upstream, in internal/geoconv.
type Point = r2.Point

// WeightedSum accumulates a running weighted sum of points, used by corridor
// geometry and by any other weighted-average reduction over cluster members.
type WeightedSum struct {
	sum       Point
	totalWeight float64
}

// Add folds one (point, weight) observation into the running sum.
func (w *WeightedSum) Add(p Point, weight float64) {
	w.sum.X += p.X * weight
	w.sum.Y += p.Y * weight
	w.totalWeight += weight
}

// Mean returns the weighted average point. Returns the zero point if no
// weight has been accumulated.
func (w *WeightedSum) Mean() Point {
	if w.totalWeight == 0 {
		return Point{}
	}
	return Point{X: w.sum.X / w.totalWeight, Y: w.sum.Y / w.totalWeight}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return a.Sub(b).Norm()
}
