package clean

import (
	"sort"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/table"
)

// Trip duration bounds in minutes, both exclusive. Shorter rides are false
// starts and longer ones are docking failures or outliers.
const (
	MinTripMinutes = 1.0
	MaxTripMinutes = 60.0
)

// CleanTrips converts a normalized trip table into trips, dropping incomplete
// rows and rides outside the duration window. Output is ordered by start time,
// newest first.
func CleanTrips(t *table.Table) ([]models.Trip, *Report) {
	report := NewReport("trips")
	report.RowsIn = t.Len()

	trips := make([]models.Trip, 0, t.Len())
	for i := range t.Rows {
		// incomplete source rows: the whole record was stored improperly
		if table.IsNull(t.Get(i, "user_type")) {
			report.Drop("missing_user_type")
			continue
		}
		// no end station and no station name to trace it back
		if table.IsNull(t.Get(i, "end_station_id")) {
			report.Drop("missing_end_station")
			continue
		}

		id, err := ParseInt(t.Get(i, "trip_id"), 64)
		if err != nil {
			report.Drop("bad_trip_id")
			continue
		}
		start, err := ParseInt(t.Get(i, "start_station_id"), 32)
		if err != nil {
			report.Drop("bad_station_id")
			continue
		}
		end, err := ParseInt(t.Get(i, "end_station_id"), 32)
		if err != nil {
			report.Drop("bad_station_id")
			continue
		}

		bike, err := ParseInt(t.Get(i, "bike_id"), 32)
		if err != nil {
			bike = 0
			report.Fix("bike_id_unparsed", 1)
		}

		startTime, err := ParseTimestamp(t.Get(i, "start_time"))
		if err != nil {
			report.Drop("bad_timestamp")
			continue
		}
		endTime, err := ParseTimestamp(t.Get(i, "end_time"))
		if err != nil {
			report.Drop("bad_timestamp")
			continue
		}

		duration := endTime.Sub(startTime).Minutes()
		if duration <= MinTripMinutes {
			report.Drop("duration_too_short")
			continue
		}
		if duration >= MaxTripMinutes {
			report.Drop("duration_too_long")
			continue
		}

		trips = append(trips, models.Trip{
			ID:              id,
			UserType:        text(t.Get(i, "user_type")),
			StartStationID:  int32(start),
			EndStationID:    int32(end),
			BikeID:          int32(bike),
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: duration,
		})
	}

	sort.SliceStable(trips, func(a, b int) bool {
		return trips[a].StartTime.After(trips[b].StartTime)
	})

	report.RowsOut = len(trips)
	return trips, report
}
