package reconcile

import (
	"time"

	"github.com/jengzang/civic-etl-go/internal/clean"
	"github.com/jengzang/civic-etl-go/internal/models"
)

// MinByKey returns the earliest trip start time per station id as chosen by key
func MinByKey(trips []models.Trip, key func(models.Trip) int32) map[int32]time.Time {
	out := make(map[int32]time.Time)
	for _, t := range trips {
		k := key(t)
		if cur, ok := out[k]; !ok || t.StartTime.Before(cur) {
			out[k] = t.StartTime
		}
	}
	return out
}

// StartStation keys a trip by where it began
func StartStation(t models.Trip) int32 { return t.StartStationID }

// EndStation keys a trip by where it ended
func EndStation(t models.Trip) int32 { return t.EndStationID }

// FirstUse sets each station's first use to the earliest start time of any
// trip that began or ended there. Stations no trip references are dropped.
// Station order is preserved and the input is not modified.
func FirstUse(stations []models.Station, trips []models.Trip) ([]models.Station, *clean.Report) {
	report := clean.NewReport("station_first_use")
	report.RowsIn = len(stations)

	starts := MinByKey(trips, StartStation)
	ends := MinByKey(trips, EndStation)

	out := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		first, ok := earliest(starts, ends, s.ID)
		if !ok {
			report.Drop("no_trips")
			continue
		}
		s.FirstUse = models.NewDate(first)
		out = append(out, s)
	}

	report.RowsOut = len(out)
	return out, report
}

func earliest(a, b map[int32]time.Time, id int32) (time.Time, bool) {
	ta, okA := a[id]
	tb, okB := b[id]
	switch {
	case okA && okB:
		if tb.Before(ta) {
			return tb, true
		}
		return ta, true
	case okA:
		return ta, true
	case okB:
		return tb, true
	default:
		return time.Time{}, false
	}
}
