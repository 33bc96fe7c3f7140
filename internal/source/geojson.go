package source

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/civic-etl-go/internal/table"
)

// GeometryColumn holds each feature's geometry as a GeoJSON string
const GeometryColumn = "geometry"

// ReadZones loads a GeoJSON feature collection as a table: one column per
// feature property (sorted) plus the geometry column.
func ReadZones(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ZonesTable(fc)
}

// ZonesTable flattens a feature collection into a table
func ZonesTable(fc *geojson.FeatureCollection) (*table.Table, error) {
	keys := make(map[string]bool)
	for _, f := range fc.Features {
		for k := range f.Properties {
			if k != GeometryColumn {
				keys[k] = true
			}
		}
	}
	columns := make([]string, 0, len(keys)+1)
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	columns = append(columns, GeometryColumn)

	t := table.New(columns...)
	for i, f := range fc.Features {
		row := make([]string, len(columns))
		for j, k := range columns[:len(columns)-1] {
			row[j] = propertyString(f.Properties[k])
		}
		if f.Geometry != nil {
			raw, err := geojson.NewGeometry(f.Geometry).MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("feature %d: failed to encode geometry: %w", i, err)
			}
			row[len(row)-1] = string(raw)
		}
		t.Append(row...)
	}
	return t, nil
}

func propertyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
