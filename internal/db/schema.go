//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-ecomload/internal/logging"
)

// duplicateColumn is SQLSTATE 42701.
const duplicateColumn = "42701"

// TableExists reports whether a table with the given name is visible in
// information_schema.
func TableExists(ctx context.Context, db DB, table string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_name = $1
        )
    `, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return exists, nil
}

// AddColumn adds a nullable column to table. It returns false, without an
// error, when the column is already present. Run it inside a transaction
// or a savepoint; a failed ALTER aborts the surrounding transaction.
func AddColumn(ctx context.Context, db DB, table, column, columnType string) (bool, error) {
	sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
		columnType,
	)
	if _, err := db.Exec(ctx, sql); err != nil {
		if IsDuplicateColumn(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return true, nil
}

// IsDuplicateColumn reports whether err is a PostgreSQL duplicate_column error.
func IsDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == duplicateColumn
}

// SplitStatements splits a SQL script on statement terminators and drops
// empty statements. Semicolons inside string literals or function bodies
// are not understood, so scripts must keep to plain DDL/DML.
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		stmt := strings.TrimSpace(part)
		if stmt == "" || isCommentOnly(stmt) {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

func isCommentOnly(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// ExecScript executes every statement of script in order.
func ExecScript(ctx context.Context, db DB, script string) error {
	statements := SplitStatements(script)
	for i, stmt := range statements {
		logging.Debug().
			Int("statement", i+1).
			Int("total", len(statements)).
			Msg("Executing schema statement")
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d/%d failed: %w", i+1, len(statements), err)
		}
	}
	return nil
}
