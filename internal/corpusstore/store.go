// Package corpusstore persists the reference corpus used by the
// similarity engine in a local SQLite database, so references survive
// process restarts.
package corpusstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/zombar/writelens/internal/models"
)

// Store wraps the SQLite connection holding reference documents.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// AddReference stores one reference document. An empty source is
// recorded as "Unknown" to match the in-memory engine.
func (s *Store) AddReference(ctx context.Context, text, source string) error {
	if source == "" {
		source = "Unknown"
	}
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO corpus_references (text, source) VALUES (?, ?)", text, source)
	if err != nil {
		return fmt.Errorf("failed to insert reference: %w", err)
	}
	return nil
}

// ListReferences returns every stored reference in insertion order.
func (s *Store) ListReferences(ctx context.Context) ([]models.CorpusEntry, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT text, source FROM corpus_references ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query references: %w", err)
	}
	defer rows.Close()

	var entries []models.CorpusEntry
	for rows.Next() {
		var e models.CorpusEntry
		if err := rows.Scan(&e.Text, &e.Source); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate references: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored references.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_references").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count references: %w", err)
	}
	return n, nil
}
