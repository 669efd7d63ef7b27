// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/journal/journal.go
// Summary: SQLite journal of overlay lifecycle transitions.
// Usage: Subscribe a Journal to a coordinator's dispatcher; query with Recent.

package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelpip/pip"
)

const journalSchemaVersion = 1

const journalSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS transitions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at INTEGER NOT NULL,              -- UnixNano
    coordinator INTEGER NOT NULL,
    screen TEXT NOT NULL,
    event TEXT NOT NULL,
    from_state TEXT NOT NULL,
    to_state TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at);
CREATE INDEX IF NOT EXISTS idx_transitions_screen ON transitions(screen);
`

// Entry is one recorded transition.
type Entry struct {
	At          time.Time
	Coordinator uint64
	ScreenID    string
	Event       string
	From, To    string
}

// Journal persists minimize, maximize and close transitions.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", journalSchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}
	return &Journal{db: db}, nil
}

// OnEvent records transition events and ignores everything else.
func (j *Journal) OnEvent(event pip.Event) {
	payload, ok := event.Payload.(pip.TransitionPayload)
	if !ok {
		return
	}
	err := j.Record(Entry{
		At:          payload.At,
		Coordinator: payload.ID,
		ScreenID:    payload.ScreenID,
		Event:       event.Type.String(),
		From:        payload.From.String(),
		To:          payload.To.String(),
	})
	if err != nil {
		log.Printf("[JOURNAL] Failed to record %s for %s: %v", event.Type, payload.ScreenID, err)
	}
}

// Record inserts one entry.
func (j *Journal) Record(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return sql.ErrConnDone
	}
	_, err := j.db.Exec(
		"INSERT INTO transitions (at, coordinator, screen, event, from_state, to_state) VALUES (?, ?, ?, ?, ?, ?)",
		e.At.UnixNano(), int64(e.Coordinator), e.ScreenID, e.Event, e.From, e.To,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	return j.query("SELECT at, coordinator, screen, event, from_state, to_state FROM transitions ORDER BY id DESC LIMIT ?", limit)
}

// ForScreen returns up to limit entries for one screen, newest first.
func (j *Journal) ForScreen(screenID string, limit int) ([]Entry, error) {
	return j.query("SELECT at, coordinator, screen, event, from_state, to_state FROM transitions WHERE screen = ? ORDER BY id DESC LIMIT ?", screenID, limit)
}

func (j *Journal) query(q string, args ...interface{}) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, sql.ErrConnDone
	}
	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			at    int64
			coord int64
			e     Entry
		)
		if err := rows.Scan(&at, &coord, &e.ScreenID, &e.Event, &e.From, &e.To); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		e.Coordinator = uint64(coord)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database. Later calls return sql.ErrConnDone.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
