package clean

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/stats"
	"github.com/jengzang/civic-etl-go/internal/table"
)

// Censored gust readings: the station reports "<31" below its detection
// threshold, recorded as 29 km/h.
const (
	CensoredGust = "<31"
	GustFloor    = 29.0
)

// Threshold is one bucket of an ordinal scale: values below Below get Label
type Threshold struct {
	Below float64
	Label string
}

// Scale is an ordered list of thresholds, evaluated ascending, first match wins
type Scale []Threshold

// Classify returns the label of the first threshold the value falls under
func (s Scale) Classify(v float64) string {
	for _, t := range s {
		if v < t.Below {
			return t.Label
		}
	}
	return ""
}

// GustScale buckets max gust speed (km/h) following the Beaufort scale
var GustScale = Scale{
	{Below: 30, Label: models.GustModerate},
	{Below: 50, Label: models.GustBreezy},
	{Below: 89, Label: models.GustGaley},
	{Below: 118, Label: models.GustStormy},
	{Below: math.Inf(1), Label: models.GustHurricane},
}

type weatherRow struct {
	date   time.Time
	values [4]float64 // mean_temp, total_rain, total_snow, max_gust
}

var weatherFields = [4]string{"mean_temp", "total_rain", "total_snow", "max_gust"}

// CleanWeather converts a normalized weather table into one observation per
// date. Missing numeric values are interpolated linearly along the date
// order, which assumes missingness is small (about 1% of rows). A field with
// no known value anywhere is left null and the rows are kept.
func CleanWeather(t *table.Table, cityID int) ([]models.WeatherObservation, *Report) {
	report := NewReport("weather")
	report.RowsIn = t.Len()

	rows := make([]weatherRow, 0, t.Len())
	for i := range t.Rows {
		date, err := time.Parse(models.DateLayout, strings.TrimSpace(t.Get(i, "date")))
		if err != nil {
			report.Drop("bad_date")
			continue
		}

		row := weatherRow{date: date}
		for k, field := range weatherFields {
			raw := strings.TrimSpace(t.Get(i, field))
			if field == "max_gust" && raw == CensoredGust {
				row.values[k] = GustFloor
				report.Fix("censored_gust", 1)
				continue
			}
			v, err := ParseFloat(raw)
			if err != nil {
				v = math.NaN()
				report.Fix("unparsed_value", 1)
			}
			row.values[k] = v
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].date.Before(rows[b].date) })

	// one observation per date: keep the first
	deduped := rows[:0]
	for _, row := range rows {
		if len(deduped) > 0 && row.date.Equal(deduped[len(deduped)-1].date) {
			report.Drop("duplicate_date")
			continue
		}
		deduped = append(deduped, row)
	}
	rows = deduped

	for k, field := range weatherFields {
		column := make([]float64, len(rows))
		for i := range rows {
			column[i] = rows[i].values[k]
		}
		filled, n := stats.Interpolate(column)
		report.Fix("interpolated_"+field, n)
		for i := range rows {
			rows[i].values[k] = filled[i]
		}
	}

	// a field with no known value in the whole input stays null on every row
	out := make([]models.WeatherObservation, 0, len(rows))
	for _, row := range rows {
		var m [4]models.Measure
		for k, v := range row.values {
			if math.IsNaN(v) {
				report.Fix("unrecoverable_"+weatherFields[k], 1)
				continue
			}
			m[k] = models.Measured(v)
		}

		var gustType string
		if m[3].Valid {
			if m[3].Float64 < GustFloor {
				m[3].Float64 = GustFloor
				report.Fix("gust_floor", 1)
			}
			gustType = GustScale.Classify(m[3].Float64)
		}

		out = append(out, models.WeatherObservation{
			Date:      models.NewDate(row.date),
			MeanTemp:  m[0],
			TotalRain: m[1],
			TotalSnow: m[2],
			MaxGust:   m[3],
			GustType:  gustType,
			CityID:    cityID,
		})
	}

	report.RowsOut = len(out)
	return out, report
}
