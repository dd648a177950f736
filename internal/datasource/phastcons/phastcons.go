// Package phastcons provides per-base conservation score lookups backed
// by DuckDB. Scores are loaded from BED-style phastCons TSV files
// (chrom, start, end, score; 0-based half-open).
package phastcons

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store provides phastCons score lookups backed by DuckDB.
// MeanScore is safe for concurrent use; Load is not and must finish
// before lookups start.
type Store struct {
	db     *sql.DB
	meanPS *sql.Stmt // prepared in Open, *sql.Stmt is concurrency-safe
}

// Open opens or creates a DuckDB database for phastCons data at the
// given path. An empty path opens an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	meanPS, err := db.Prepare(`SELECT
		SUM(score * (LEAST(end_pos, ?) - GREATEST(start_pos, ?))),
		SUM(LEAST(end_pos, ?) - GREATEST(start_pos, ?))
		FROM phastcons
		WHERE chrom = ? AND start_pos < ? AND end_pos > ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare mean score: %w", err)
	}
	s.meanPS = meanPS

	return s, nil
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS phastcons (
		chrom VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		score FLOAT
	)`); err != nil {
		return err
	}
	// Index for fast interval queries
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_pc_lookup ON phastcons (chrom, start_pos, end_pos)`)
	return nil
}

// Loaded returns true if the phastCons table has data.
func (s *Store) Loaded() bool {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM phastcons").Scan(&count)
	return err == nil && count > 0
}

// Count returns the number of rows in the phastCons table.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM phastcons").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count phastcons rows: %w", err)
	}
	return count, nil
}

// Load bulk-loads phastCons data from a (possibly gzipped) BED-style
// TSV file using DuckDB's read_csv:
//
//	chrom  start  end  score
func (s *Store) Load(tsvPath string) error {
	// Clear any existing data first (idempotent reload)
	s.db.Exec(`DELETE FROM phastcons`)

	query := fmt.Sprintf(`INSERT INTO phastcons
		SELECT column0, column1, column2, CAST(column3 AS FLOAT)
		FROM read_csv('%s', delim='\t', header=false,
			columns={
				'column0': 'VARCHAR',
				'column1': 'BIGINT',
				'column2': 'BIGINT',
				'column3': 'VARCHAR'
			})`, tsvPath)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading phastCons data: %w", err)
	}
	return nil
}

// MeanScore returns the coverage-weighted mean conservation score over
// [start, end) on chrom. ok is false when no scored bases overlap the
// interval, which callers must keep distinct from a mean of zero.
func (s *Store) MeanScore(ctx context.Context, chrom string, start, end int64) (float64, bool, error) {
	var weighted, covered sql.NullFloat64
	err := s.meanPS.QueryRowContext(ctx, end, start, end, start, chrom, end, start).
		Scan(&weighted, &covered)
	if err != nil {
		return 0, false, fmt.Errorf("mean score query: %w", err)
	}
	if !covered.Valid || covered.Float64 <= 0 {
		return 0, false, nil
	}
	return weighted.Float64 / covered.Float64, true, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.meanPS.Close()
	return s.db.Close()
}
