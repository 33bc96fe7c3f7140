package models

import "time"

// Run represents one pipeline execution for a dataset
type Run struct {
	ID      string `json:"id" db:"id"` // uuid
	Dataset string `json:"dataset" db:"dataset"`
	Status  string `json:"status" db:"status"` // running, completed, failed

	RowsIn      int    `json:"rows_in" db:"rows_in"`
	RowsOut     int    `json:"rows_out" db:"rows_out"`
	DroppedJSON string `json:"dropped_json,omitempty" db:"dropped_json"` // rule -> count
	Error       string `json:"error,omitempty" db:"error_message"`

	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}

// RunStatus constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunFilter represents filter parameters for querying runs
type RunFilter struct {
	Dataset  string `form:"dataset"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// RunRequest asks the server to run the pipeline for some datasets
type RunRequest struct {
	Datasets []string `json:"datasets"`
}

// Pagination defaults shared by every list endpoint
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// ClampPage applies the pagination defaults to a requested page
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Page is a paginated response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage wraps one page of results
func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	page, pageSize = ClampPage(page, pageSize)
	if data == nil {
		data = []T{}
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Page[T]{Data: data, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
