// Package sqlite provides SQLite-based storage implementations for the documentation cache.
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

// pragmas are applied to every connection before the schema is created.
// busy_timeout waits on lock contention instead of failing with
// "database is locked".
var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Open opens the database connection and creates the schema if needed.
// File-based databases use WAL journaling; in-memory databases cannot.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	stmts := pragmas
	if db.path != ":memory:" {
		stmts = append([]string{"PRAGMA journal_mode = WAL"}, stmts...)
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}

	db.db = conn
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

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// schemaVersion is recorded in PRAGMA user_version.
const schemaVersion = 1

// createSchema creates the cache tables if they don't exist.
// A platform row marks a completed save, even one with zero documents.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS platforms (
			id TEXT PRIMARY KEY,
			document_count INTEGER NOT NULL DEFAULT 0,
			crawled_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			platform_id TEXT NOT NULL REFERENCES platforms(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			synthetic INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_documents_platform_position ON documents(platform_id, position);
	`

	if _, err := db.db.Exec(schema); err != nil {
		return err
	}
	_, err := db.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}
