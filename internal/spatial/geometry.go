package spatial

import (
	"math"

	"github.com/paulmach/orb"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// RingPoints converts a GeoJSON ring (lon, lat order) into points
func RingPoints(ring orb.Ring) []Point {
	points := make([]Point, len(ring))
	for i, p := range ring {
		points[i] = Point{Lat: p.Lat(), Lon: p.Lon()}
	}
	return points
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}

	return minLat, minLon, maxLat, maxLon
}

// PolygonArea approximates the area of a ring in square meters with the
// shoelace formula. Good enough for city-sized zones.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < len(points); i++ {
		j := (i + 1) % len(points)
		sum += (points[j].Lon - points[i].Lon) * (points[j].Lat + points[i].Lat)
	}

	latRad := points[0].Lat * math.Pi / 180
	metersPerDegreeLat := 111320.0
	metersPerDegreeLon := 111320.0 * math.Cos(latRad)

	return math.Abs(sum) * metersPerDegreeLat * metersPerDegreeLon / 2.0
}

// PointInPolygon checks if a point is inside a ring using planar ray casting
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lon < (polygon[j].Lon-polygon[i].Lon)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}
