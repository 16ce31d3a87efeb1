package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// CountRows returns the row count of each table, in the order given.
func CountRows(ctx context.Context, db DB, tables ...string) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(tables))
	for _, table := range tables {
		var n int64
		sql := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()
		if err := db.QueryRow(ctx, sql).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
