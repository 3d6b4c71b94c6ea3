// Package db provides PostgreSQL storage for the site's collections and
// back-office accounts.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is wrapped by update and delete operations on a missing id.
var ErrNotFound = errors.New("record not found")

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

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Count returns the number of records in a collection.
func (db *DB) Count(ctx context.Context, c Collection) (int, error) {
	if _, ok := ParseCollection(string(c)); !ok {
		return 0, fmt.Errorf("unknown collection: %s", c)
	}
	var n int
	// c is validated above, so interpolating the table name is safe.
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+string(c)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c, err)
	}
	return n, nil
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func (db *DB) deleteByID(ctx context.Context, table string, id any) error {
	result, err := db.pool.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", strings.TrimSuffix(table, "s"), id, ErrNotFound)
	}
	return nil
}

// pageClause renders ORDER BY / LIMIT / OFFSET, appending to args.
func pageClause(opts ListOptions, args []any) (string, []any) {
	clause := " ORDER BY created_at " + opts.Order.SQL()
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}
