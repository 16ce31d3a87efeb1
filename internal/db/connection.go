//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package db provides database connection management for pgedge-ecomload.
package db

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-ecomload/internal/config"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
	"github.com/pgEdge/pgedge-ecomload/pkg/version"
)

// DB is satisfied by both *pgx.Conn and pgx.Tx, so the schema helpers
// can run either directly on the connection or inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnectionString returns the connection string for cfg. An explicit
// Connection value wins; otherwise a postgres:// URL is assembled from
// the discrete database parameters.
func ConnectionString(cfg *config.Config) string {
	if cfg.Connection != "" {
		return cfg.Connection
	}

	d := cfg.Database
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	return u.String()
}

// ConnectSingle opens a single connection tagged with the given job name
// in application_name.
func ConnectSingle(ctx context.Context, connString, job string) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	appName := version.AppName(job)
	connConfig.RuntimeParams["application_name"] = appName

	logging.Debug().
		Str("host", connConfig.Host).
		Uint16("port", connConfig.Port).
		Str("database", connConfig.Database).
		Str("application_name", appName).
		Msg("Connecting to database")

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", connConfig.Host).
		Str("database", connConfig.Database).
		Msg("Connected to database")

	return conn, nil
}

// Conn is a DB that can also open transactions. *pgx.Conn satisfies it.
type Conn interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}
