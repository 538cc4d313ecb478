package main

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteSessionStore persists session rule configs in a SQLite file so
// they survive process restarts. Configs are stored as JSON rows keyed
// by session id. Eviction of stale sessions is left to the operator;
// the store itself never expires entries.
type SQLiteSessionStore struct {
	db *sql.DB
}

// OpenSQLiteSessionStore opens (and if needed initializes) a session
// store at the given SQLite path or file: URI.
func OpenSQLiteSessionStore(dsn string) (*SQLiteSessionStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	const ddl = `CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		config     TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sessions table: %w", err)
	}
	return &SQLiteSessionStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

// Resolve returns the stored config, or the default preset when the
// session is unknown or its stored row cannot be decoded.
func (s *SQLiteSessionStore) Resolve(sessionID string) RuleConfig {
	var raw string
	err := s.db.QueryRow(`SELECT config FROM sessions WHERE session_id = ?`, sessionID).Scan(&raw)
	if err != nil {
		return DefaultRules()
	}
	var cfg RuleConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return DefaultRules()
	}
	return cfg
}

func (s *SQLiteSessionStore) Set(sessionID string, cfg RuleConfig) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	s.db.Exec(
		`INSERT INTO sessions (session_id, config) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET config = excluded.config`,
		sessionID, string(raw),
	)
}

func (s *SQLiteSessionStore) Clear(sessionID string) {
	s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID)
}
