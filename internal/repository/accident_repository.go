package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/civic-etl-go/internal/models"
)

var accidentColumns = []string{
	"date", "latitude", "longitude", "light", "acclass", "invtype",
	"injury", "cyclistype", "cycact", "ward_id",
}

// AccidentRepository handles database operations for collisions
type AccidentRepository struct {
	db *sql.DB
}

// NewAccidentRepository creates a new accident repository
func NewAccidentRepository(db *sql.DB) *AccidentRepository {
	return &AccidentRepository{db: db}
}

// ReplaceAll replaces every stored collision
func (r *AccidentRepository) ReplaceAll(ctx context.Context, records []models.AccidentRecord) error {
	return replaceAll(ctx, r.db, "accidents", accidentColumns, len(records), func(i int) []interface{} {
		a := records[i]
		return []interface{}{
			a.Date, a.Latitude, a.Longitude, a.Light, a.Class, a.InvolvementType,
			a.Injury, a.CyclistType, a.CyclistAction, a.WardID,
		}
	})
}

// GetAccidents retrieves collisions with filtering and pagination
func (r *AccidentRepository) GetAccidents(ctx context.Context, filter models.AccidentFilter) ([]models.AccidentRecord, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.WardID > 0 {
		conditions = append(conditions, "ward_id = ?")
		args = append(args, filter.WardID)
	}
	if filter.Class != "" {
		conditions = append(conditions, "acclass = ?")
		args = append(args, filter.Class)
	}
	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}

	w := where(conditions)
	total, err := count(ctx, r.db, "accidents", w, args)
	if err != nil {
		return nil, 0, err
	}

	offset := paginate(&filter.Page, &filter.PageSize)
	query := `SELECT date, latitude, longitude, light, acclass, invtype,
		injury, cyclistype, cycact, ward_id
		FROM accidents` + w + " ORDER BY date DESC, id LIMIT ? OFFSET ?"

	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accidents: %w", err)
	}
	defer rows.Close()

	var out []models.AccidentRecord
	for rows.Next() {
		var a models.AccidentRecord
		err := rows.Scan(
			&a.Date, &a.Latitude, &a.Longitude, &a.Light, &a.Class, &a.InvolvementType,
			&a.Injury, &a.CyclistType, &a.CyclistAction, &a.WardID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan accident: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// CountByWard returns the number of collisions per ward
func (r *AccidentRepository) CountByWard(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT ward_id, COUNT(*) FROM accidents WHERE ward_id IS NOT NULL GROUP BY ward_id")
	if err != nil {
		return nil, fmt.Errorf("failed to count accidents by ward: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var ward, n int64
		if err := rows.Scan(&ward, &n); err != nil {
			return nil, fmt.Errorf("failed to scan ward count: %w", err)
		}
		out[ward] = n
	}
	return out, rows.Err()
}
