// Package loader loads the normalized e-commerce dataset into PostgreSQL
// with idempotent inserts.
package loader

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-ecomload/internal/db"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
)

// anchorTable is checked to decide whether the schema must be created.
const anchorTable = "customers"

//go:embed schema.sql
var defaultSchema string

// DefaultSchema returns the built-in schema script.
func DefaultSchema() string {
	return defaultSchema
}

// SchemaScript returns the contents of path, or the built-in schema when
// path is empty.
func SchemaScript(path string) (string, error) {
	if path == "" {
		return defaultSchema, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file: %w", err)
	}
	return string(b), nil
}

// EnsureSchema runs script when the customers table does not exist yet.
// All statements run in one transaction. It reports whether the schema
// was created.
func EnsureSchema(ctx context.Context, conn db.Conn, script string) (bool, error) {
	exists, err := db.TableExists(ctx, conn, anchorTable)
	if err != nil {
		return false, err
	}
	if exists {
		logging.Info().Msg("Schema already exists, skipping creation")
		return false, nil
	}

	logging.Info().Int("statements", len(db.SplitStatements(script))).Msg("Creating schema")

	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := db.ExecScript(ctx, tx, script); err != nil {
		return false, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit schema: %w", err)
	}

	logging.Info().Msg("Schema created")
	return true, nil
}
