// Package store persists component records in a sqlite database laid out
// for KiCad's database-library feature: one table per component type,
// created lazily as parts of each type are added.
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store wraps the part database connection.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Initialize creates a new, empty database file without any tables. It
// refuses to overwrite an existing file.
func Initialize(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists and cannot be re-initialized", path)
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL", path))
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// Open opens an existing database for reading and writing. A missing file
// is an error rather than an implicit create; an empty part database must
// be made explicitly with Initialize.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3",
		fmt.Sprintf("file:%s?mode=rw&_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("could not connect to database at path %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to database at path %s: %w", path, err)
	}
	return &Store{db: db, path: path, log: log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TableNames returns the sorted list of part tables in the database.
func (s *Store) TableNames() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// hasTable reports whether the named table exists.
func (s *Store) hasTable(name string) (bool, error) {
	tables, err := s.TableNames()
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t == name {
			return true, nil
		}
	}
	return false, nil
}

// tableColumns returns the column names of a table in declaration order.
func (s *Store) tableColumns(table string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT 0", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()
	return rows.Columns()
}
