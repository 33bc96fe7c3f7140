package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/civic-etl-go/internal/models"
)

var stationColumns = []string{
	"station_id", "name", "lat", "lon", "address", "capacity",
	"rent_key", "rent_phone", "rent_transit_card", "rent_credit_card",
	"ward_id", "first_use",
}

const stationSelect = `SELECT station_id, name, lat, lon, address, capacity,
	rent_key, rent_phone, rent_transit_card, rent_credit_card, ward_id, first_use
	FROM stations`

// StationRepository handles database operations for stations
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// ReplaceAll replaces every stored station
func (r *StationRepository) ReplaceAll(ctx context.Context, stations []models.Station) error {
	return replaceAll(ctx, r.db, "stations", stationColumns, len(stations), func(i int) []interface{} {
		s := stations[i]
		return []interface{}{
			s.ID, s.Name, s.Lat, s.Lon, s.Address, s.Capacity,
			s.RentKey, s.RentPhone, s.RentTransitCard, s.RentCreditCard,
			s.WardID, s.FirstUse,
		}
	})
}

// GetStations retrieves stations with filtering and pagination
func (r *StationRepository) GetStations(ctx context.Context, filter models.StationFilter) ([]models.Station, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.WardID > 0 {
		conditions = append(conditions, "ward_id = ?")
		args = append(args, filter.WardID)
	}

	w := where(conditions)
	total, err := count(ctx, r.db, "stations", w, args)
	if err != nil {
		return nil, 0, err
	}

	offset := paginate(&filter.Page, &filter.PageSize)
	stations, err := r.query(ctx, stationSelect+w+" ORDER BY station_id LIMIT ? OFFSET ?", append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return stations, total, nil
}

// GetAll retrieves every station
func (r *StationRepository) GetAll(ctx context.Context) ([]models.Station, error) {
	return r.query(ctx, stationSelect+" ORDER BY station_id")
}

// GetByID retrieves a single station, nil when absent
func (r *StationRepository) GetByID(ctx context.Context, id int32) (*models.Station, error) {
	stations, err := r.query(ctx, stationSelect+" WHERE station_id = ?", id)
	if err != nil || len(stations) == 0 {
		return nil, err
	}
	return &stations[0], nil
}

func (r *StationRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		err := rows.Scan(
			&s.ID, &s.Name, &s.Lat, &s.Lon, &s.Address, &s.Capacity,
			&s.RentKey, &s.RentPhone, &s.RentTransitCard, &s.RentCreditCard,
			&s.WardID, &s.FirstUse,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}
