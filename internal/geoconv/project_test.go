package geoconv

import "testing"

func TestProjectOfReferenceIsOrigin(t *testing.T) {
	ref := LatLon{Lat: 40.0, Lon: -75.0}
	x, y := Project(ref, ref)
	if x != 0 || y != 0 {
		t.Errorf("Project(ref, ref) = (%g, %g), want (0, 0)", x, y)
	}
}

func TestProjectNorthIsPositiveY(t *testing.T) {
	ref := LatLon{Lat: 40.0, Lon: -75.0}
	north := LatLon{Lat: 40.01, Lon: -75.0}
	x, y := Project(ref, north)
	if y <= 0 {
		t.Errorf("a point due north should project to positive y, got y=%g", y)
	}
	if x < -1 || x > 1 {
		t.Errorf("a point due north should project to x near 0, got x=%g", x)
	}
}

func TestProjectEastIsPositiveX(t *testing.T) {
	ref := LatLon{Lat: 40.0, Lon: -75.0}
	east := LatLon{Lat: 40.0, Lon: -74.99}
	x, y := Project(ref, east)
	if x <= 0 {
		t.Errorf("a point due east should project to positive x, got x=%g", x)
	}
	if y < -1 || y > 1 {
		t.Errorf("a point due east should project to y near 0, got y=%g", y)
	}
}

func TestCentroidAveragesPoints(t *testing.T) {
	c := Centroid([]LatLon{{Lat: 0, Lon: 0}, {Lat: 10, Lon: 20}})
	if c.Lat != 5 || c.Lon != 10 {
		t.Errorf("Centroid = %+v, want {5 10}", c)
	}
}

func TestCentroidEmpty(t *testing.T) {
	c := Centroid(nil)
	if c != (LatLon{}) {
		t.Errorf("Centroid(nil) = %+v, want zero value", c)
	}
}
