package spatial

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// Centroid calculates the spherical centroid of a set of points
func Centroid(points []Point) Point {
	switch len(points) {
	case 0:
		return Point{}
	case 1:
		return points[0]
	}

	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Vector)
	}
	if sum.Norm() == 0 {
		return points[0]
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Lon))
	}

	return rect.Lo().Lat.Degrees(), rect.Lo().Lng.Degrees(), rect.Hi().Lat.Degrees(), rect.Hi().Lng.Degrees()
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	return totalDist
}
