// Package db provides PostgreSQL persistence for consultants, tenders, match
// results and extracted profiles, plus an in-memory store with the same
// behavior for tests and single-process use.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/richat-staffing/internal/matching"
	"github.com/jonathan/richat-staffing/internal/types"
)

var (
	_ matching.Store = (*DB)(nil)
	_ matching.Store = (*MemoryStore)(nil)
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables and indexes if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func notFound(kind, id string) error {
	return types.NewError(types.CodeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// dateArg converts an optional Date into a query argument for a DATE column
func dateArg(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// scanDate converts a nullable DATE column back into an optional Date
func scanDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	d := types.NewDate(t.Year(), t.Month(), t.Day())
	return &d
}
