package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/table"
)

var parenthetical = regexp.MustCompile(`\s*\([^()]*\)`)

// CleanName strips parenthetical qualifiers: "Annex (95)" becomes "Annex"
func CleanName(name string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(name, ""))
}

// DecodeBoundary parses a GeoJSON geometry cell into a multipolygon
func DecodeBoundary(raw string) (orb.MultiPolygon, error) {
	g, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return nil, err
	}

	if g.Coordinates == nil {
		return nil, fmt.Errorf("boundary has no coordinates")
	}

	switch geom := g.Coordinates.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, nil
	case orb.MultiPolygon:
		return geom, nil
	default:
		return nil, fmt.Errorf("boundary is a %s, not a polygon", geom.GeoJSONType())
	}
}

type zoneRow struct {
	id       int64
	name     string
	boundary orb.MultiPolygon
}

// cleanZones enforces unique positive ids and a decodable boundary per zone
func cleanZones(t *table.Table, idCol, nameCol string, report *Report) []zoneRow {
	seen := make(map[int64]bool, t.Len())
	out := make([]zoneRow, 0, t.Len())
	for i := range t.Rows {
		id, err := ParseInt(t.Get(i, idCol), 64)
		if err != nil || id <= 0 {
			report.Drop("bad_zone_id")
			continue
		}
		if seen[id] {
			report.Drop("duplicate_zone_id")
			continue
		}

		boundary, err := DecodeBoundary(t.Get(i, "geometry"))
		if err != nil {
			report.Drop("bad_geometry")
			continue
		}

		seen[id] = true
		out = append(out, zoneRow{id: id, name: CleanName(t.Get(i, nameCol)), boundary: boundary})
	}
	return out
}

// CleanWards converts a normalized ward layer into wards. Census fields are
// merged in by AttachCensus.
func CleanWards(t *table.Table, cityID int) ([]models.Ward, *Report) {
	report := NewReport("wards")
	report.RowsIn = t.Len()

	var wards []models.Ward
	for _, z := range cleanZones(t, "ward_id", "ward_name", report) {
		wards = append(wards, models.Ward{
			ID:       z.id,
			Name:     z.name,
			CityID:   cityID,
			Boundary: z.boundary,
		})
	}

	report.RowsOut = len(wards)
	return wards, report
}

// CleanNeighborhoods converts a normalized neighbourhood layer
func CleanNeighborhoods(t *table.Table, cityID int) ([]models.Neighborhood, *Report) {
	report := NewReport("neighborhoods")
	report.RowsIn = t.Len()

	var out []models.Neighborhood
	for _, z := range cleanZones(t, "neighborhood_id", "area_name", report) {
		out = append(out, models.Neighborhood{
			ID:       z.id,
			Name:     z.name,
			CityID:   cityID,
			Boundary: z.boundary,
		})
	}

	report.RowsOut = len(out)
	return out, report
}

// CleanPopulation converts the normalized neighbourhood population table
func CleanPopulation(t *table.Table) ([]models.NeighborhoodPopulation, *Report) {
	report := NewReport("population")
	report.RowsIn = t.Len()

	var out []models.NeighborhoodPopulation
	for i := range t.Rows {
		id, err := ParseInt(t.Get(i, "neighborhood_id"), 64)
		if err != nil || id <= 0 {
			report.Drop("bad_zone_id")
			continue
		}
		pop, err := ParseInt(strings.ReplaceAll(t.Get(i, "total_population"), ",", ""), 64)
		if err != nil {
			report.Drop("bad_population")
			continue
		}
		out = append(out, models.NeighborhoodPopulation{
			NeighborhoodID:  id,
			TotalPopulation: int(pop),
			Year:            models.CensusYear,
		})
	}

	report.RowsOut = len(out)
	return out, report
}
