package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/civic-etl-go/internal/models"
)

var tripColumns = []string{
	"trip_id", "user_type", "start_station_id", "end_station_id", "bike_id",
	"start_time", "end_time", "duration",
}

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// ReplaceAll replaces every stored trip
func (r *TripRepository) ReplaceAll(ctx context.Context, trips []models.Trip) error {
	return replaceAll(ctx, r.db, "trips", tripColumns, len(trips), func(i int) []interface{} {
		t := trips[i]
		return []interface{}{
			t.ID, t.UserType, t.StartStationID, t.EndStationID, t.BikeID,
			t.StartTime.UTC(), t.EndTime.UTC(), t.DurationMinutes,
		}
	})
}

// GetTrips retrieves trips with filtering and pagination, newest first
func (r *TripRepository) GetTrips(ctx context.Context, filter models.TripFilter) ([]models.Trip, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StationID > 0 {
		conditions = append(conditions, "(start_station_id = ? OR end_station_id = ?)")
		args = append(args, filter.StationID, filter.StationID)
	}
	if filter.UserType != "" {
		conditions = append(conditions, "user_type = ?")
		args = append(args, filter.UserType)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, time.Unix(filter.StartTime, 0).UTC())
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "end_time <= ?")
		args = append(args, time.Unix(filter.EndTime, 0).UTC())
	}

	w := where(conditions)
	total, err := count(ctx, r.db, "trips", w, args)
	if err != nil {
		return nil, 0, err
	}

	offset := paginate(&filter.Page, &filter.PageSize)
	query := `SELECT trip_id, user_type, start_station_id, end_station_id, bike_id,
		start_time, end_time, duration
		FROM trips` + w + " ORDER BY start_time DESC, trip_id LIMIT ? OFFSET ?"

	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var t models.Trip
		err := rows.Scan(
			&t.ID, &t.UserType, &t.StartStationID, &t.EndStationID, &t.BikeID,
			&t.StartTime, &t.EndTime, &t.DurationMinutes,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, total, rows.Err()
}
