// Package audit maintains a local index of recorded sessions.
//
// The index is a small sqlite database with one row per configure/verify
// run: who ran it, when, which log file captured it, and how it exited.
// Writes are best-effort; an unavailable index never changes a command's
// outcome.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Session is one recorded command execution.
type Session struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	SessionID string    `json:"session_id"`
	Command   string    `json:"command"`
	LogPath   string    `json:"log_path,omitempty"`
	ExitCode  int       `json:"exit_code"`
}

// Store provides persistent storage for session records.
type Store struct {
	db *sql.DB
}

// Open creates or opens the session index at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session index: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			user TEXT NOT NULL,
			session_id TEXT NOT NULL,
			command TEXT NOT NULL,
			log_path TEXT,
			exit_code INTEGER DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);
		CREATE INDEX IF NOT EXISTS idx_sessions_command ON sessions(command);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record persists one session.
func (s *Store) Record(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (timestamp, user, session_id, command, log_path, exit_code)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sess.Timestamp, sess.User, sess.SessionID, sess.Command, sess.LogPath, sess.ExitCode)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, timestamp, user, session_id, command, log_path, exit_code
		FROM sessions ORDER BY timestamp DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Timestamp, &sess.User, &sess.SessionID,
			&sess.Command, &sess.LogPath, &sess.ExitCode); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
