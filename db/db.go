// Package db stores a command catalog in SQLite. The table is only written
// by Replace when importing a CSV file; browsing reads it.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	"gitref/model"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn     *sql.DB
	readOnly bool
}

// Open opens or creates the catalog database at path.
func Open(path string) (*DB, error) {
	return open(path, false)
}

// OpenReadOnly opens an existing catalog database without creating it.
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	return open(dsn, true)
}

func open(dsn string, readOnly bool) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &DB{conn: conn, readOnly: readOnly}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) migrate() error {
	var exists int
	err := d.conn.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'commands'`,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if d.readOnly {
		return fmt.Errorf("no commands table")
	}

	_, err = d.conn.Exec(`
		CREATE TABLE commands (
			rank INTEGER PRIMARY KEY CHECK (rank > 0),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			usage TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX idx_commands_name ON commands(name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// List returns every stored command ordered by rank.
func (d *DB) List(ctx context.Context) ([]model.Command, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT rank, name, description, usage
		FROM commands
		ORDER BY rank
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []model.Command
	for rows.Next() {
		var c model.Command
		if err := rows.Scan(&c.Rank, &c.Name, &c.Description, &c.Usage); err != nil {
			return nil, err
		}
		commands = append(commands, c)
	}
	return commands, rows.Err()
}

// Replace swaps the stored catalog for records in a single transaction.
func (d *DB) Replace(ctx context.Context, records []model.Command) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commands`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO commands (rank, name, description, usage) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range records {
		if _, err := stmt.ExecContext(ctx, c.Rank, c.Name, c.Description, c.Usage); err != nil {
			return fmt.Errorf("inserting %q (rank %d): %w", c.Name, c.Rank, err)
		}
	}
	return tx.Commit()
}

// FileSource reads a catalog from a SQLite file, opening it only for the
// duration of the read.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return s.Path
}

func (s FileSource) Records(ctx context.Context) ([]model.Command, error) {
	d, err := OpenReadOnly(s.Path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.List(ctx)
}
