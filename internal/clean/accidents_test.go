package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/table"
)

func accidentTable(rows ...[]string) *table.Table {
	t := table.New("year", "date", "latitude", "longitude", "light", "acclass",
		"invtype", "injury", "cyclistype", "cycact")
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

func TestCleanAccidents(t *testing.T) {
	raw := accidentTable(
		[]string{"2018", "2018/06/01 00:00:00", "43.65", "-79.38", "Daylight", "Fatal", "Cyclist", "Major", "", ""},
		[]string{"2019", "2019-07-15", "43.66", "-79.39", "Dark", "Non-Fatal Injury", "Driver", "None", "", ""},
		[]string{"2016", "2016-07-15", "43.66", "-79.39", "Dark", "Fatal", "Driver", "Fatal", "", ""},
		[]string{"2018", "2018-07-15", "", "-79.39", "Dark", "Fatal", "Driver", "Fatal", "", ""},
	)

	records, report := CleanAccidents(raw)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Date.Year(), FirstAccidentYear)
		if r.Class == models.ClassFatal {
			assert.Equal(t, models.ClassFatal, r.Injury)
		}
	}
	assert.Equal(t, "2018-06-01", records[0].Date.String())
	assert.Equal(t, "None", records[1].Injury)

	assert.Equal(t, 1, report.Dropped["year_before_2017"])
	assert.Equal(t, 1, report.Dropped["bad_coordinates"])
	assert.Equal(t, 1, report.Fixed["forced_fatal_injury"])
}
