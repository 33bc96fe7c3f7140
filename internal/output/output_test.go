package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/models"
)

func TestWriteCSVStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", StationsFile)
	stations := []models.Station{
		{ID: 7000, Name: "Fort York", Lat: 43.64, Lon: -79.39, Capacity: 35, RentKey: true,
			WardID: models.Zone(10), FirstUse: models.NewDate(time.Date(2017, 1, 1, 8, 0, 0, 0, time.UTC))},
		{ID: 7001, Name: "Lower Jarvis", Lat: 43.65, Lon: -79.37, Capacity: 15},
	}
	require.NoError(t, WriteCSV(path, stations))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "station_id,name,lat,lon,address,capacity,rent_key"))
	assert.True(t, strings.HasSuffix(lines[1], ",10,2017-01-01"))
	assert.True(t, strings.HasSuffix(lines[2], ",,"))
}

func TestWriteTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), TripsFile)
	start := time.Date(2018, 1, 1, 0, 47, 0, 0, time.UTC)
	trips := []models.Trip{{
		ID: 712382, UserType: "Annual Member", StartStationID: 7003, EndStationID: 7010,
		StartTime: start, EndTime: start.Add(8 * time.Minute), DurationMinutes: 8,
	}}
	require.NoError(t, WriteTrips(path, trips))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "trip_id,user_type,start_station_id,start_time,end_station_id,end_time,bike_id,duration")
	assert.Contains(t, string(data), "712382,Annual Member,7003,2018-01-01 00:47:00,7010,2018-01-01 00:55:00,0,8")
}

func TestWriteGeoJSONWards(t *testing.T) {
	path := filepath.Join(t.TempDir(), WardsGeoJSONFile)
	wards := []models.Ward{{
		ID: 1, Name: "Etobicoke North", Population: 115120,
		Boundary: orb.MultiPolygon{{{{-79.4, 43.6}, {-79.3, 43.6}, {-79.3, 43.7}, {-79.4, 43.6}}}},
	}}
	require.NoError(t, WriteGeoJSON(path, WardFeatures(wards)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Etobicoke North", fc.Features[0].Properties.MustString("ward_name"))
	assert.Equal(t, 115120.0, fc.Features[0].Properties.MustFloat64("population"))
	assert.Equal(t, "MultiPolygon", fc.Features[0].Geometry.GeoJSONType())
}
