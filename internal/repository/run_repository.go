package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/civic-etl-go/internal/models"
)

const runSelect = `SELECT id, dataset, status, rows_in, rows_out, dropped_json,
	error_message, started_at, finished_at FROM etl_runs`

// RunRepository handles database operations for pipeline runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create records a run as it starts
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO etl_runs (id, dataset, status, started_at)
		VALUES (?, ?, ?, ?)`, run.ID, run.Dataset, run.Status, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Finish records the outcome of a run
func (r *RunRepository) Finish(ctx context.Context, run *models.Run) error {
	if run.FinishedAt == nil {
		now := time.Now()
		run.FinishedAt = &now
	}
	dropped := run.DroppedJSON
	if dropped == "" {
		dropped = "{}"
	}

	result, err := r.db.ExecContext(ctx, `UPDATE etl_runs
		SET status = ?, rows_in = ?, rows_out = ?, dropped_json = ?, error_message = ?, finished_at = ?
		WHERE id = ?`,
		run.Status, run.RowsIn, run.RowsOut, dropped, run.Error, run.FinishedAt.UTC(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// GetByID retrieves a run, nil when absent
func (r *RunRepository) GetByID(ctx context.Context, id string) (*models.Run, error) {
	runs, err := r.query(ctx, runSelect+" WHERE id = ?", id)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// GetRuns retrieves runs newest first with filtering and pagination
func (r *RunRepository) GetRuns(ctx context.Context, filter models.RunFilter) ([]models.Run, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Dataset != "" {
		conditions = append(conditions, "dataset = ?")
		args = append(args, filter.Dataset)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	w := where(conditions)
	total, err := count(ctx, r.db, "etl_runs", w, args)
	if err != nil {
		return nil, 0, err
	}

	offset := paginate(&filter.Page, &filter.PageSize)
	runs, err := r.query(ctx, runSelect+w+" ORDER BY started_at DESC LIMIT ? OFFSET ?", append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

func (r *RunRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Run, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		var finished sql.NullTime
		err := rows.Scan(&run.ID, &run.Dataset, &run.Status, &run.RowsIn, &run.RowsOut,
			&run.DroppedJSON, &run.Error, &run.StartedAt, &finished)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
