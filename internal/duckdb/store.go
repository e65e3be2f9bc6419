// Package duckdb provides a DuckDB-backed store for sampled windows, a
// queryable alternative to the tab-separated dataset log.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/openbio/seqsampler/internal/sampler"
)

// Store manages a DuckDB connection for persisting sampled windows.
// It implements sampler.DatasetLogger.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS samples (
		mode VARCHAR,
		chrom VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		strand VARCHAR,
		labels VARCHAR
	)`)
	return err
}

// LogSample implements sampler.DatasetLogger.
func (s *Store) LogSample(mode sampler.Mode, chrom string, start, end int, strand byte, labelIndices []int) error {
	parts := make([]string, len(labelIndices))
	for i, idx := range labelIndices {
		parts[i] = strconv.Itoa(idx)
	}
	_, err := s.db.Exec(
		`INSERT INTO samples (mode, chrom, start_pos, end_pos, strand, labels)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(mode), chrom, start, end, string(strand), strings.Join(parts, ";"))
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// CountSamples returns the number of logged windows for a mode.
func (s *Store) CountSamples(mode sampler.Mode) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM samples WHERE mode = ?`, string(mode)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return count, nil
}
