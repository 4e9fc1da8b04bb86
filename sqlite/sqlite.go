// Package sqlite provides SQLite-based storage implementations for
// brandscan services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// WAL is ~7x faster for writes and allows concurrent reads during writes.
	// Trade-off: creates additional -wal and -shm files alongside the database.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign key constraints; child tables rely on ON DELETE CASCADE.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction. Saving a brand context touches four
// tables, so writers need one.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
// Collection fields with no identity of their own (social handles,
// contact emails/phones, important links) are stored as JSON text on
// the brand row; products, policies, and FAQs get child tables so they
// stay queryable.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS brands (
			id TEXT PRIMARY KEY,
			base_url TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			about_text TEXT NOT NULL DEFAULT '',
			social_handles TEXT NOT NULL DEFAULT '{}',
			contact_emails TEXT NOT NULL DEFAULT '[]',
			contact_phones TEXT NOT NULL DEFAULT '[]',
			important_links TEXT NOT NULL DEFAULT '{}',
			context_hash TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL DEFAULT '',
			handle TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			hero INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS policies (
			id TEXT PRIMARY KEY,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			kind TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS faqs (
			id TEXT PRIMARY KEY,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			question TEXT NOT NULL DEFAULT '',
			answer TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);
		CREATE INDEX IF NOT EXISTS idx_policies_brand_id ON policies(brand_id);
		CREATE INDEX IF NOT EXISTS idx_faqs_brand_id ON faqs(brand_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
