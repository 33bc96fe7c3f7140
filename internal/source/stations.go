package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jengzang/civic-etl-go/internal/fetch"
	"github.com/jengzang/civic-etl-go/internal/table"
)

// StationColumns are the raw station feed fields kept in the station table
var StationColumns = []string{
	"station_id", "name", "lat", "lon", "address", "nearby_distance",
	"rental_methods", "capacity", "_ride_code_support", "is_charging_station",
}

// ReadStationPayload flattens a GBFS station_information document into the
// raw station table. rental_methods is rendered as a quoted list literal,
// the form the station cleaner parses. A document without a station array
// returns a *fetch.Error.
func ReadStationPayload(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read station payload: %w", err)
	}

	stations := gjson.GetBytes(data, fetch.StationsPath)
	if !gjson.ValidBytes(data) || !stations.IsArray() {
		return nil, &fetch.Error{
			Source: fetch.SourceStations,
			Err:    fmt.Errorf("payload has no %s array", fetch.StationsPath),
		}
	}

	t := table.New(StationColumns...)
	for _, s := range stations.Array() {
		row := make([]string, len(StationColumns))
		for i, col := range StationColumns {
			v := s.Get(col)
			if col == "rental_methods" && v.IsArray() {
				row[i] = listLiteral(v)
				continue
			}
			if v.Exists() && v.Type != gjson.Null {
				row[i] = v.String()
			}
		}
		t.Append(row...)
	}
	return t, nil
}

func listLiteral(v gjson.Result) string {
	items := v.Array()
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item.String() + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
