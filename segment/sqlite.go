// Copyright 2024 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package segment

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// SchemaVersion is the version of the SQLite segment schema.
const SchemaVersion = "1"

// ErrSchemaVersion indicates that a database was written with an
// unsupported schema.
var ErrSchemaVersion = errors.New("unsupported segment schema version")

// SQLiteStore stores buckets as rows of a SQLite database.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite segment store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening segment database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS segments (
			substring TEXT NOT NULL,
			kind TEXT NOT NULL,
			stroke TEXT NOT NULL,
			full_text TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS segments_substring_kind ON segments (substring, kind);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating segment tables: %w", err)
	}

	var version string
	err = db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO metadata (key, value) VALUES ('schema_version', ?)", SchemaVersion); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("writing segment schema version: %w", err)
		}
	case err != nil:
		_ = db.Close()
		return nil, fmt.Errorf("reading segment schema version: %w", err)
	case version != SchemaVersion:
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s (expected %s)", ErrSchemaVersion, version, SchemaVersion)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements [Store.Append]. The matches of b are inserted in a
// single transaction.
func (s *SQLiteStore) Append(key string, kind Kind, b Bucket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("appending segment %q: %w", key, err)
	}
	for _, m := range b.Matches {
		_, err := tx.Exec(
			"INSERT INTO segments (substring, kind, stroke, full_text) VALUES (?, ?, ?, ?)",
			key, kind.String(), m.Stroke, m.FullText,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("appending segment %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("appending segment %q: %w", key, err)
	}
	return nil
}

// Lookup implements [Reader.Lookup]. Matches are returned in the order
// they were appended.
func (s *SQLiteStore) Lookup(substring string, kind Kind) ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT stroke, full_text FROM segments WHERE substring = ? AND kind = ? ORDER BY rowid",
		substring, kind.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("looking up segment %q: %w", substring, err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Stroke, &m.FullText); err != nil {
			return nil, fmt.Errorf("looking up segment %q: %w", substring, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("looking up segment %q: %w", substring, err)
	}
	return matches, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
