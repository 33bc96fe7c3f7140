package spatial

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/models"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.Ring {
	return orb.Ring{{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat}}
}

func testZones() []Zone {
	return []Zone{
		{ID: 1, Name: "West", Polygon: orb.MultiPolygon{{square(-79.4, 43.6, -79.3, 43.7)}}},
		{ID: 2, Name: "East", Polygon: orb.MultiPolygon{{square(-79.3, 43.6, -79.2, 43.7)}}},
		{ID: 3, Name: "Overlap", Polygon: orb.MultiPolygon{{square(-79.25, 43.6, -79.15, 43.7)}}},
		{ID: 5, Name: "Donut", Polygon: orb.MultiPolygon{{
			square(-79.6, 43.6, -79.5, 43.7),
			square(-79.57, 43.63, -79.53, 43.67),
		}}},
	}
}

func TestZoneIndexLocate(t *testing.T) {
	idx, err := NewZoneIndex(testZones())
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	cases := []struct {
		name     string
		lat, lon float64
		want     int64
		ok       bool
	}{
		{"inside west", 43.65, -79.35, 1, true},
		{"overlap picks smallest id", 43.65, -79.22, 2, true},
		{"only overlap zone", 43.65, -79.17, 3, true},
		{"outside every zone", 43.80, -79.35, 0, false},
		{"inside hole", 43.65, -79.55, 0, false},
		{"donut ring", 43.61, -79.59, 5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := idx.Locate(tc.lat, tc.lon)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestZoneIndexSharedEdge(t *testing.T) {
	idx, err := NewZoneIndex(testZones()[:2])
	require.NoError(t, err)

	id, ok := idx.Locate(43.65, -79.3)
	require.True(t, ok)
	assert.Contains(t, []int64{1, 2}, id)
}

func TestZoneIndexMatchesRayCasting(t *testing.T) {
	ring := square(-79.4, 43.6, -79.3, 43.7)
	idx, err := NewZoneIndex([]Zone{{ID: 1, Polygon: orb.MultiPolygon{{ring}}}})
	require.NoError(t, err)

	points := RingPoints(ring)
	for lat := 43.55; lat < 43.75; lat += 0.02 {
		for lon := -79.45; lon < -79.25; lon += 0.02 {
			_, ok := idx.Locate(lat, lon)
			assert.Equal(t, PointInPolygon(Point{Lat: lat, Lon: lon}, points), ok, "%f,%f", lat, lon)
		}
	}
}

func TestNewZoneIndexErrors(t *testing.T) {
	zones := testZones()
	zones[1].ID = 1
	_, err := NewZoneIndex(zones)
	assert.True(t, errors.Is(err, ErrDuplicateZone))

	_, err = NewZoneIndex([]Zone{{ID: 9, Polygon: orb.MultiPolygon{{orb.Ring{{-79.4, 43.6}, {-79.3, 43.6}, {-79.4, 43.6}}}}}})
	assert.Error(t, err)

	_, err = NewZoneIndex([]Zone{{ID: 9}})
	assert.Error(t, err)

	_, err = NewZoneIndex([]Zone{{ID: 9, Polygon: orb.MultiPolygon{{
		square(-79.4, 43.6, -79.3, 43.7),
		square(-79.2, 43.6, -79.1, 43.7),
	}}}})
	assert.True(t, errors.Is(err, ErrHoleOutsideShell))

	// latitude out of range
	_, err = NewZoneIndex([]Zone{{ID: 9, Polygon: orb.MultiPolygon{{square(43.6, -79.4, 43.7, -179.3)}}}})
	assert.True(t, errors.Is(err, ErrCoordinateOrder))
}

func TestJoinPointsIdempotent(t *testing.T) {
	idx, err := NewZoneIndex(testZones())
	require.NoError(t, err)

	stations := []models.Station{
		{ID: 7000, Lat: 43.65, Lon: -79.35},
		{ID: 7001, Lat: 43.80, Lon: -79.35},
		{ID: 7002, Lat: 43.65, Lon: -79.22},
	}

	once := JoinPoints(stations, idx, StationCoords, AssignStationWard)
	twice := JoinPoints(once, idx, StationCoords, AssignStationWard)

	require.Len(t, once, 3)
	assert.Equal(t, once, twice)
	assert.Equal(t, models.Zone(1), once[0].WardID)
	assert.False(t, once[1].WardID.Valid)
	assert.Equal(t, models.Zone(2), once[2].WardID)
	assert.Equal(t, int32(7001), once[1].ID)

	for _, s := range stations {
		assert.False(t, s.WardID.Valid)
	}
}

func TestNearest(t *testing.T) {
	candidates := []Point{
		{Lat: 43.70, Lon: -79.40},
		{Lat: 43.65, Lon: -79.38},
		{Lat: 43.66, Lon: -79.39},
	}
	ranked := Nearest(43.65, -79.38, candidates, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Index)
	assert.Equal(t, 0.0, ranked[0].DistanceMeters)
	assert.Equal(t, 2, ranked[1].Index)
	assert.InDelta(t, 1390, ranked[1].DistanceMeters, 50)
}

func TestHaversineDistance(t *testing.T) {
	// one degree of latitude
	assert.InDelta(t, 111195, HaversineDistance(43, -79, 44, -79), 1)
}
