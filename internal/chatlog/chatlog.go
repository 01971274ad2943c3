// Package chatlog persists chat transcripts in SQLite.
package chatlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Roles of transcript turns.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is one conversation.
type Session struct {
	ID        string
	Mode      string
	CreatedAt time.Time
}

// Turn is one message in a session.
type Turn struct {
	Role      string
	Text      string
	CreatedAt time.Time
}

// Store is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the transcript database at path. Parent directories
// are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY under concurrent handlers
	db.SetMaxOpenConns(1)
	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	queries := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// NewSession starts a session for mode and returns it.
func (s *Store) NewSession(ctx context.Context, mode string) (Session, error) {
	sess := Session{ID: uuid.NewString(), Mode: mode, CreatedAt: s.now().UTC().Truncate(time.Second)}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, created_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Mode, sess.CreatedAt.Unix())
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Session looks up a session by id.
func (s *Store) Session(ctx context.Context, id string) (Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Session{}, ErrSessionNotFound
	}
	var (
		sess    Session
		created int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, mode, created_at FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Mode, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	sess.CreatedAt = time.Unix(created, 0).UTC()
	return sess, nil
}

// Append records a user turn and the bot reply to it in one transaction.
func (s *Store) Append(ctx context.Context, sessionID, userText, botText string) error {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	ts := s.now().UTC().Unix()
	for _, t := range []Turn{{Role: RoleUser, Text: userText}, {Role: RoleBot, Text: botText}} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO turns (session_id, role, text, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, t.Role, t.Text, ts); err != nil {
			return fmt.Errorf("insert turn: %w", err)
		}
	}
	return tx.Commit()
}

// Turns returns the turns of a session oldest first.
func (s *Store) Turns(ctx context.Context, sessionID string) ([]Turn, error) {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, text, created_at FROM turns WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()
	var out []Turn
	for rows.Next() {
		var (
			t       Turn
			created int64
		)
		if err := rows.Scan(&t.Role, &t.Text, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
