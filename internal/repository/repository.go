package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/civic-etl-go/internal/database"
	"github.com/jengzang/civic-etl-go/internal/models"
)

// paginate clamps page and page size and returns the row offset
func paginate(page, pageSize *int) int {
	*page, *pageSize = models.ClampPage(*page, *pageSize)
	return (*page - 1) * *pageSize
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// replaceAll swaps the full contents of a table inside one transaction.
// row returns the column values of record i.
func replaceAll(ctx context.Context, db *sql.DB, table string, columns []string, n int, row func(i int) []interface{}) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	return database.InTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare %s insert: %w", table, err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", table, err)
			}
		}
		return nil
	})
}

func count(ctx context.Context, db *sql.DB, table, whereSQL string, args []interface{}) (int64, error) {
	var total int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+whereSQL, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}
