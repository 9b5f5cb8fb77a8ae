// CLAUDE:SUMMARY SQLite persistence for generated quizzes and timed recipient sessions.
// Package quizstore persists generated quizzes and the timed, session-tracked
// delivery around them: a quiz is saved once, then each recipient gets a
// session that is created, started, and completed under an optional time
// limit.
//
// Storage is SQLite through dbopen (WAL, foreign keys, busy-timeout
// pragmas). All timestamps are stored as unix seconds in UTC.
package quizstore

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/hazyhaar/quizforge/dbopen"
	"github.com/hazyhaar/quizforge/idgen"
)

var (
	// ErrNotFound means no quiz or session exists under the given id.
	ErrNotFound = errors.New("quizstore: not found")

	// ErrSessionState means the requested transition does not apply to the
	// session's current state (start twice, complete before start, ...).
	ErrSessionState = errors.New("quizstore: invalid session state")

	// ErrSessionExpired means the session's time limit elapsed before
	// completion.
	ErrSessionExpired = errors.New("quizstore: session time limit exceeded")
)

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	language       TEXT NOT NULL,
	num_questions  INTEGER NOT NULL,
	quiz_json      TEXT NOT NULL,
	source_quality TEXT NOT NULL,
	warnings_json  TEXT NOT NULL DEFAULT '[]',
	created_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	quiz_id       TEXT NOT NULL,
	recipient     TEXT NOT NULL,
	time_limit_s  INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL,
	started_at    INTEGER,
	completed_at  INTEGER,
	score         REAL,
	answers_json  TEXT,
	FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
);
CREATE INDEX IF NOT EXISTS idx_sessions_quiz ON sessions(quiz_id);
`

// Config configures the store.
type Config struct {
	// Path is the SQLite database file. Required (":memory:" for tests).
	Path string `json:"path" yaml:"path"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Store persists quizzes and sessions. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	cfg    Config
	quizID idgen.Generator
	sessID idgen.Generator
	now    func() time.Time
}

// New opens (or creates) the store at cfg.Path.
func New(cfg Config) (*Store, error) {
	cfg.defaults()
	db, err := dbopen.Open(cfg.Path, dbopen.WithMkdirAll(), dbopen.WithSchema(schema))
	if err != nil {
		return nil, err
	}
	return NewWithDB(db, cfg), nil
}

// NewWithDB wraps an already-opened database that carries the store schema.
// Used by tests with dbopen.OpenMemory.
func NewWithDB(db *sql.DB, cfg Config) *Store {
	cfg.defaults()
	return &Store{
		db:     db,
		cfg:    cfg,
		quizID: idgen.Prefixed("quiz_", idgen.UUIDv7()),
		sessID: idgen.Prefixed("sess_", idgen.UUIDv7()),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Schema returns the store's DDL, for callers composing their own dbopen
// options.
func Schema() string { return schema }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
