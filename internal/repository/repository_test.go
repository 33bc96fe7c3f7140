package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/database"
	"github.com/jengzang/civic-etl-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn).RunMigrations())
	return conn
}

func date(s string) models.Date {
	t, _ := time.Parse(models.DateLayout, s)
	return models.Date{Time: t}
}

func TestStationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStationRepository(openTestDB(t))

	stations := []models.Station{
		{ID: 7001, Name: "Bay St", Lat: 43.65, Lon: -79.38, Capacity: 15, RentKey: true, WardID: models.Zone(10), FirstUse: date("2017-01-01")},
		{ID: 7000, Name: "King St", Lat: 43.64, Lon: -79.39, Capacity: 19, RentCreditCard: true},
		{ID: 7002, Name: "Queen St", Lat: 43.66, Lon: -79.37, Capacity: 11, WardID: models.Zone(10)},
	}
	require.NoError(t, repo.ReplaceAll(ctx, stations))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int32(7000), all[0].ID)
	assert.False(t, all[0].WardID.Valid)
	assert.True(t, all[0].FirstUse.IsZero())
	assert.True(t, all[0].RentCreditCard)

	got, total, err := repo.GetStations(ctx, models.StationFilter{WardID: 10, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, int32(7001), got[0].ID)
	assert.Equal(t, "2017-01-01", got[0].FirstUse.String())
	assert.True(t, got[0].RentKey)

	one, err := repo.GetByID(ctx, 7002)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "Queen St", one.Name)

	missing, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// replacing drops the previous contents
	require.NoError(t, repo.ReplaceAll(ctx, stations[:1]))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReplaceAllRollsBackOnConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewStationRepository(openTestDB(t))

	require.NoError(t, repo.ReplaceAll(ctx, []models.Station{{ID: 1, Name: "a"}}))

	dup := []models.Station{{ID: 2, Name: "b"}, {ID: 2, Name: "c"}}
	assert.Error(t, repo.ReplaceAll(ctx, dup))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int32(1), all[0].ID)
}

func TestTripRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewTripRepository(openTestDB(t))

	base := time.Date(2019, 3, 1, 8, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		{ID: 1, UserType: "Annual Member", StartStationID: 7000, EndStationID: 7001, StartTime: base, EndTime: base.Add(10 * time.Minute), DurationMinutes: 10},
		{ID: 2, UserType: "Casual Member", StartStationID: 7001, EndStationID: 7002, StartTime: base.Add(time.Hour), EndTime: base.Add(70 * time.Minute), DurationMinutes: 10},
		{ID: 3, UserType: "Annual Member", StartStationID: 7002, EndStationID: 7003, StartTime: base.Add(2 * time.Hour), EndTime: base.Add(130 * time.Minute), DurationMinutes: 10, BikeID: 42},
	}
	require.NoError(t, repo.ReplaceAll(ctx, trips))

	got, total, err := repo.GetTrips(ctx, models.TripFilter{StationID: 7001})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.True(t, got[0].StartTime.Equal(base.Add(time.Hour)))

	got, total, err = repo.GetTrips(ctx, models.TripFilter{UserType: "Annual Member", StartTime: base.Add(time.Minute).Unix()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, int32(42), got[0].BikeID)
}

func TestWeatherAndAccidentRepositories(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	weather := NewWeatherRepository(conn)
	require.NoError(t, weather.ReplaceAll(ctx, []models.WeatherObservation{
		{Date: date("2019-01-02"), MeanTemp: models.Measured(-3), MaxGust: models.Measured(45), GustType: models.GustBreezy, CityID: 1},
		{Date: date("2019-01-01"), MeanTemp: models.Measured(-5), TotalRain: models.Measured(0), MaxGust: models.Measured(29), GustType: models.GustModerate, CityID: 1},
	}))
	obs, total, err := weather.GetWeather(ctx, models.WeatherFilter{From: "2019-01-01", To: "2019-01-31"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, obs, 2)
	assert.Equal(t, "2019-01-01", obs[0].Date.String())
	assert.Equal(t, models.Measured(0), obs[0].TotalRain)
	assert.False(t, obs[1].TotalRain.Valid)
	assert.False(t, obs[1].TotalSnow.Valid)
	assert.Equal(t, models.Measured(45), obs[1].MaxGust)

	accidents := NewAccidentRepository(conn)
	require.NoError(t, accidents.ReplaceAll(ctx, []models.AccidentRecord{
		{Date: date("2018-05-01"), Latitude: 43.65, Longitude: -79.38, Class: models.ClassFatal, WardID: models.Zone(3)},
		{Date: date("2018-06-01"), Latitude: 43.66, Longitude: -79.37, Class: "Non-Fatal Injury", WardID: models.Zone(3)},
		{Date: date("2018-07-01"), Latitude: 43.90, Longitude: -79.00, Class: "Non-Fatal Injury"},
	}))

	recs, total, err := accidents.GetAccidents(ctx, models.AccidentFilter{Class: models.ClassFatal})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recs, 1)
	assert.Equal(t, models.Zone(3), recs[0].WardID)

	counts, err := accidents.CountByWard(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{3: 2}, counts)
}

func TestZoneRepositoryRoundTripsBoundaries(t *testing.T) {
	ctx := context.Background()
	repo := NewZoneRepository(openTestDB(t))

	ring := orb.Ring{{-79.4, 43.6}, {-79.3, 43.6}, {-79.3, 43.7}, {-79.4, 43.7}, {-79.4, 43.6}}
	wards := []models.Ward{
		{ID: 2, Name: "Etobicoke Centre", Population: 118020, AreaKm2: 36.6, MedianHouseholdIncome: "$80,000 to $89,999", CityID: 1, Boundary: orb.MultiPolygon{{ring}}},
	}
	require.NoError(t, repo.ReplaceWards(ctx, wards))

	got, err := repo.GetWards(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, wards[0], got[0])

	require.NoError(t, repo.ReplaceNeighborhoods(ctx, []models.Neighborhood{{ID: 1, Name: "Annex", CityID: 1, Boundary: orb.MultiPolygon{{ring}}}}))
	require.NoError(t, repo.ReplacePopulation(ctx, []models.NeighborhoodPopulation{{NeighborhoodID: 1, TotalPopulation: 30526, Year: models.CensusYear}}))
}

func TestRunRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(openTestDB(t))

	started := time.Date(2020, 1, 1, 3, 0, 0, 0, time.UTC)
	run := &models.Run{ID: "run-1", Dataset: "trips", Status: models.RunStatusRunning, StartedAt: started}
	require.NoError(t, repo.Create(ctx, run))

	run.Status = models.RunStatusCompleted
	run.RowsIn, run.RowsOut = 10, 8
	run.DroppedJSON = `{"bad_duration":2}`
	require.NoError(t, repo.Finish(ctx, run))

	got, err := repo.GetByID(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 8, got.RowsOut)
	assert.Equal(t, `{"bad_duration":2}`, got.DroppedJSON)
	assert.True(t, got.StartedAt.Equal(started))
	require.NotNil(t, got.FinishedAt)

	runs, total, err := repo.GetRuns(ctx, models.RunFilter{Dataset: "trips"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, runs, 1)

	assert.Error(t, repo.Finish(ctx, &models.Run{ID: "missing", Status: models.RunStatusFailed}))
}
