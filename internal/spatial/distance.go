package spatial

import (
	"sort"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Ranked is an index into a candidate list with its distance to the origin
type Ranked struct {
	Index          int
	DistanceMeters float64
}

// Nearest ranks candidates by great-circle distance from (lat, lon) and
// returns at most limit of them, closest first. Equal distances keep the
// candidate order.
func Nearest(lat, lon float64, candidates []Point, limit int) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{Index: i, DistanceMeters: HaversineDistance(lat, lon, c.Lat, c.Lon)}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].DistanceMeters < ranked[b].DistanceMeters
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
