package spatial

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// ErrDuplicateZone is returned when two zones share an id
var ErrDuplicateZone = errors.New("duplicate zone id")

// ErrHoleOutsideShell is returned for a polygon hole that lies outside its shell
var ErrHoleOutsideShell = errors.New("polygon hole outside its shell")

// ErrCoordinateOrder is returned for rings whose vertices are not lon/lat degrees
var ErrCoordinateOrder = errors.New("coordinates are not lon/lat degrees")

// Zone is a ward or neighbourhood boundary keyed by its id
type Zone struct {
	ID      int64
	Name    string
	Polygon orb.MultiPolygon
}

// ZoneIndex answers point-in-zone queries against a fixed set of zones.
// It is safe for concurrent use once built.
type ZoneIndex struct {
	index *s2.ShapeIndex
	ids   map[s2.Shape]int64
}

// NewZoneIndex builds the s2 shape index over every zone polygon
func NewZoneIndex(zones []Zone) (*ZoneIndex, error) {
	idx := &ZoneIndex{
		index: s2.NewShapeIndex(),
		ids:   make(map[s2.Shape]int64, len(zones)),
	}

	seen := make(map[int64]bool, len(zones))
	for _, z := range zones {
		if seen[z.ID] {
			return nil, fmt.Errorf("zone %d: %w", z.ID, ErrDuplicateZone)
		}
		seen[z.ID] = true

		polygon, err := toS2Polygon(z.Polygon)
		if err != nil {
			return nil, fmt.Errorf("zone %d (%s): %w", z.ID, z.Name, err)
		}
		idx.index.Add(polygon)
		idx.ids[polygon] = z.ID
	}

	// queries run concurrently and must never trigger lazy index updates
	idx.index.Build()
	return idx, nil
}

// Len returns the number of indexed zones
func (z *ZoneIndex) Len() int {
	return len(z.ids)
}

// Locate returns the id of the zone containing the point. A point on the
// shared edge of two zones belongs to exactly one of them. When zones
// overlap, the smallest id wins.
func (z *ZoneIndex) Locate(lat, lon float64) (int64, bool) {
	if z == nil || len(z.ids) == 0 {
		return 0, false
	}

	// one query per call: a ContainsPointQuery holds iterator state
	query := s2.NewContainsPointQuery(z.index, s2.VertexModelSemiOpen)
	shapes := query.ContainingShapes(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))

	found := false
	var best int64
	for _, shape := range shapes {
		id := z.ids[shape]
		if !found || id < best {
			best, found = id, true
		}
	}
	return best, found
}

// toS2Polygon converts every ring of a multipolygon into normalized s2 loops
// and lets s2 work out the shell/hole nesting.
func toS2Polygon(mp orb.MultiPolygon) (*s2.Polygon, error) {
	var loops []*s2.Loop
	for _, poly := range mp {
		if len(poly) > 1 {
			shell := RingPoints(poly[0])
			for i, hole := range poly[1:] {
				if !holeInShell(RingPoints(hole), shell) {
					return nil, fmt.Errorf("hole %d: %w", i+1, ErrHoleOutsideShell)
				}
			}
		}
		for _, ring := range poly {
			points := RingPoints(ring)
			if n := len(points); n > 1 && points[0] == points[n-1] {
				points = points[:n-1]
			}
			if len(points) < 3 || PolygonArea(points) == 0 {
				return nil, fmt.Errorf("degenerate ring with %d vertices", len(points))
			}
			minLat, minLon, maxLat, maxLon := BoundingBox(points)
			if minLat < -90 || maxLat > 90 || minLon < -180 || maxLon > 180 {
				return nil, fmt.Errorf("ring outside lon/lat range: %w", ErrCoordinateOrder)
			}

			vertices := make([]s2.Point, len(points))
			for i, p := range points {
				vertices[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
			}
			loop := s2.LoopFromPoints(vertices)
			loop.Normalize()
			loops = append(loops, loop)
		}
	}
	if len(loops) == 0 {
		return nil, errors.New("empty boundary")
	}
	return s2.PolygonFromLoops(loops), nil
}

// holeInShell reports whether any hole vertex falls inside the shell ring
func holeInShell(hole, shell []Point) bool {
	for _, p := range hole {
		if PointInPolygon(p, shell) {
			return true
		}
	}
	return false
}
