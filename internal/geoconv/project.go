// Package geoconv projects lat/lon OD endpoints onto a local planar tangent
// frame around a reference point, so the core clustering pipeline — which
// is deliberately non-projected — can consume ordinary OD lines (C17).
package geoconv

import (
	"math"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// LatLon is a geographic point in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Centroid picks the default reference point when none is given: the plain
// average of every endpoint seen, not weighted by anything.
func Centroid(points []LatLon) LatLon {
	if len(points) == 0 {
		return LatLon{}
	}
	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(points))
	return LatLon{Lat: sumLat / n, Lon: sumLon / n}
}

// haversineDistance returns the great-circle distance between two points in meters.
func haversineDistance(a, b LatLon) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// bearing returns the initial bearing from a to b in degrees, 0 = north, 90 = east.
func bearing(a, b LatLon) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lonDiff := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lonDiff)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Project maps p onto a planar frame centered on ref: x is meters east,
// y is meters north. It places p at its great-circle distance from ref
// along the initial bearing from ref (an azimuthal equidistant projection),
// which stays close to true planar distances over the short spans a single
// trajectory set typically covers.
func Project(ref, p LatLon) (x, y float64) {
	if p == ref {
		return 0, 0
	}
	dist := haversineDistance(ref, p)
	brg := bearing(ref, p) * math.Pi / 180
	return dist * math.Sin(brg), dist * math.Cos(brg)
}
