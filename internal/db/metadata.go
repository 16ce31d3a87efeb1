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
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-ecomload/internal/logging"
	"github.com/pgEdge/pgedge-ecomload/pkg/version"
)

const metadataTable = "ecomload_metadata"

// Metadata keys written by the batch jobs.
const (
	MetaVersion          = "version"
	MetaLastLoadAt       = "last_load_at"
	MetaLastLoadSource   = "last_load_source"
	MetaNamesGeneratedAt = "names_generated_at"
)

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS ecomload_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveMetadata upserts the given key/value pairs together with the
// current tool version.
func SaveMetadata(ctx context.Context, db DB, values map[string]string) error {
	if _, err := db.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{MetaVersion: version.Short()}
	for k, v := range values {
		metadata[k] = v
	}

	for key, value := range metadata {
		_, err := db.Exec(ctx, `
            INSERT INTO ecomload_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Int("keys", len(metadata)).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key. It returns
// an empty string when the key or the table is missing.
func GetMetadataValue(ctx context.Context, db DB, key string) (string, error) {
	exists, err := TableExists(ctx, db, metadataTable)
	if err != nil || !exists {
		return "", err
	}

	var value string
	err = db.QueryRow(ctx, `
        SELECT value FROM ecomload_metadata WHERE key = $1
    `, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// MetadataEntry is a single stored key/value pair.
type MetadataEntry struct {
	Key   string
	Value string
}

// GetAllMetadata retrieves all metadata sorted by key. A missing table
// yields no entries.
func GetAllMetadata(ctx context.Context, db DB) ([]MetadataEntry, error) {
	exists, err := TableExists(ctx, db, metadataTable)
	if err != nil || !exists {
		return nil, err
	}

	rows, err := db.Query(ctx, `SELECT key, value FROM ecomload_metadata`)
	if err != nil {
		return nil, err
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[MetadataEntry])
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}
