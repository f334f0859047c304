// Package geo implements the receiver-location predicates shared by SAME
// and VTEC scoring: FIPS6 county matching and point-in-polygon coverage.
package geo

import kgeo "github.com/kellydunn/golang-geo"

// Location is the fixed receiver configuration a MessageCache is built
// with: decimal-degree coordinates plus the FIPS6 county code of the
// receiver's listening area.
type Location struct {
	Lat   float64
	Lon   float64
	FIPS6 string
}

// Point is a single (lat, lon) vertex, used for VTEC polygons.
type Point struct {
	Lat float64
	Lon float64
}

// FIPSMatches reports whether two FIPS6 codes refer to the same county,
// ignoring the leading part-of-county selector digit on both sides.
func FIPSMatches(a, b string) bool {
	if len(a) != 6 || len(b) != 6 {
		return a == b
	}
	return a[1:] == b[1:]
}

// AnyFIPSMatches reports whether fips6 matches any code in the list.
func AnyFIPSMatches(fips6 string, list []string) bool {
	for _, f := range list {
		if FIPSMatches(fips6, f) {
			return true
		}
	}
	return false
}

// PointInPolygon runs a ray-casting point-in-polygon test. An empty or
// degenerate polygon never contains anything.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}
	pts := make([]*kgeo.Point, len(polygon))
	for i, v := range polygon {
		pts[i] = kgeo.NewPoint(v.Lat, v.Lon)
	}
	poly := kgeo.NewPolygon(pts)
	return poly.Contains(kgeo.NewPoint(p.Lat, p.Lon))
}
