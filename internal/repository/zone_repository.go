package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/civic-etl-go/internal/clean"
	"github.com/jengzang/civic-etl-go/internal/models"
)

// ZoneRepository handles database operations for wards and neighbourhoods.
// Boundaries are stored as GeoJSON geometry text.
type ZoneRepository struct {
	db *sql.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *sql.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func encodeBoundary(mp orb.MultiPolygon) string {
	data, err := geojson.NewGeometry(mp).MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// ReplaceWards replaces every stored ward
func (r *ZoneRepository) ReplaceWards(ctx context.Context, wards []models.Ward) error {
	columns := []string{"ward_id", "ward_name", "population", "area", "median_household_income", "city_id", "boundary"}
	return replaceAll(ctx, r.db, "wards", columns, len(wards), func(i int) []interface{} {
		w := wards[i]
		return []interface{}{w.ID, w.Name, w.Population, w.AreaKm2, w.MedianHouseholdIncome, w.CityID, encodeBoundary(w.Boundary)}
	})
}

// GetWards retrieves every ward with its boundary, ordered by id
func (r *ZoneRepository) GetWards(ctx context.Context) ([]models.Ward, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ward_id, ward_name, population, area,
		median_household_income, city_id, boundary FROM wards ORDER BY ward_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wards: %w", err)
	}
	defer rows.Close()

	var wards []models.Ward
	for rows.Next() {
		var w models.Ward
		var boundary string
		if err := rows.Scan(&w.ID, &w.Name, &w.Population, &w.AreaKm2, &w.MedianHouseholdIncome, &w.CityID, &boundary); err != nil {
			return nil, fmt.Errorf("failed to scan ward: %w", err)
		}
		if w.Boundary, err = clean.DecodeBoundary(boundary); err != nil {
			return nil, fmt.Errorf("ward %d boundary: %w", w.ID, err)
		}
		wards = append(wards, w)
	}
	return wards, rows.Err()
}

// ReplaceNeighborhoods replaces every stored neighbourhood
func (r *ZoneRepository) ReplaceNeighborhoods(ctx context.Context, hoods []models.Neighborhood) error {
	columns := []string{"neighborhood_id", "area_name", "city_id", "boundary"}
	return replaceAll(ctx, r.db, "neighborhoods", columns, len(hoods), func(i int) []interface{} {
		n := hoods[i]
		return []interface{}{n.ID, n.Name, n.CityID, encodeBoundary(n.Boundary)}
	})
}

// ReplacePopulation replaces every stored neighbourhood population count
func (r *ZoneRepository) ReplacePopulation(ctx context.Context, pop []models.NeighborhoodPopulation) error {
	columns := []string{"neighborhood_id", "total_population", "year"}
	return replaceAll(ctx, r.db, "neighborhood_population", columns, len(pop), func(i int) []interface{} {
		p := pop[i]
		return []interface{}{p.NeighborhoodID, p.TotalPopulation, p.Year}
	})
}
