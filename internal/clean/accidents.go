package clean

import (
	"math"
	"strconv"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/table"
)

// FirstAccidentYear is the earliest collision year kept
const FirstAccidentYear = 2017

// CleanAccidents converts a normalized collision table into accident records.
// Ward assignment happens later in the spatial join.
func CleanAccidents(t *table.Table) ([]models.AccidentRecord, *Report) {
	report := NewReport("accidents")
	report.RowsIn = t.Len()

	out := make([]models.AccidentRecord, 0, t.Len())
	for i := range t.Rows {
		year, err := ParseInt(t.Get(i, "year"), 32)
		if err != nil {
			report.Drop("bad_year")
			continue
		}
		if year < FirstAccidentYear {
			report.Drop("year_before_" + strconv.Itoa(FirstAccidentYear))
			continue
		}

		ts, err := ParseTimestamp(t.Get(i, "date"))
		if err != nil {
			report.Drop("bad_date")
			continue
		}

		lat, errLat := ParseFloat(t.Get(i, "latitude"))
		lon, errLon := ParseFloat(t.Get(i, "longitude"))
		if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) {
			report.Drop("bad_coordinates")
			continue
		}

		rec := models.AccidentRecord{
			Date:            models.NewDate(ts),
			Latitude:        lat,
			Longitude:       lon,
			Light:           text(t.Get(i, "light")),
			Class:           text(t.Get(i, "acclass")),
			InvolvementType: text(t.Get(i, "invtype")),
			Injury:          text(t.Get(i, "injury")),
			CyclistType:     text(t.Get(i, "cyclistype")),
			CyclistAction:   text(t.Get(i, "cycact")),
		}

		// source entry fix: fatal collisions often leave injury blank or wrong
		if rec.Class == models.ClassFatal && rec.Injury != models.ClassFatal {
			rec.Injury = models.ClassFatal
			report.Fix("forced_fatal_injury", 1)
		}

		out = append(out, rec)
	}

	report.RowsOut = len(out)
	return out, report
}
