// Package index is the sqlite-backed symbol index behind cross-file
// definition lookups: declarations are extracted from source with
// tree-sitter and stored keyed by fully-qualified name.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the sqlite data access layer for the index.
type Store struct {
	db *sql.DB
}

// NewStore opens a sqlite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("index: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("index: migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id            INTEGER PRIMARY KEY,
  path          TEXT NOT NULL UNIQUE,
  hash          TEXT
);

CREATE TABLE IF NOT EXISTS symbols (
  id            INTEGER PRIMARY KEY,
  file_id       INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  name          TEXT NOT NULL,
  fqn           TEXT NOT NULL,
  kind          TEXT NOT NULL,
  line          INTEGER NOT NULL,
  col           INTEGER NOT NULL,
  offset        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symbols_fqn ON symbols(fqn);
CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
`

// FileHash returns the stored content hash for path, or "" when the file is
// not indexed.
func (s *Store) FileHash(path string) (string, error) {
	var hash sql.NullString
	err := s.db.QueryRow(`SELECT hash FROM files WHERE path = ?`, path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: file hash: %w", err)
	}
	return hash.String, nil
}

// ReplaceFile upserts the file record and replaces its symbols in one
// transaction.
func (s *Store) ReplaceFile(path, hash string, symbols []Symbol) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRow(
		`INSERT INTO files (path, hash) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash
		 RETURNING id`,
		path, hash,
	).Scan(&fileID)
	if err != nil {
		return fmt.Errorf("index: upsert file %s: %w", path, err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("index: clear symbols for %s: %w", path, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO symbols (file_id, name, fqn, kind, line, col, offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, sym := range symbols {
		if _, err := stmt.Exec(fileID, sym.Name, sym.FQN, sym.Kind, sym.Line, sym.Col, sym.Offset); err != nil {
			return fmt.Errorf("index: insert symbol %s: %w", sym.FQN, err)
		}
	}
	return tx.Commit()
}

// SymbolsByFQN returns every indexed location declaring fqn, ordered by
// path then offset for deterministic results.
func (s *Store) SymbolsByFQN(fqn string) ([]Location, error) {
	rows, err := s.db.Query(
		`SELECT f.path, sym.line, sym.col, sym.offset
		 FROM symbols sym JOIN files f ON f.id = sym.file_id
		 WHERE sym.fqn = ? OR sym.name = ?
		 ORDER BY f.path, sym.offset`,
		fqn, fqn,
	)
	if err != nil {
		return nil, fmt.Errorf("index: lookup %s: %w", fqn, err)
	}
	defer rows.Close()

	var locs []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.Path, &loc.Line, &loc.Col, &loc.Offset); err != nil {
			return nil, fmt.Errorf("index: scan location: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("index: rows: %w", err)
	}
	return locs, nil
}
