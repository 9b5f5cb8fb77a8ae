// CLAUDE:SUMMARY Timed recipient sessions: create, start, complete under time limit, fetch with derived state.
package quizstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/quizforge/dbopen"
)

// SessionState is the derived lifecycle state of a session.
type SessionState string

const (
	SessionPending   SessionState = "pending"
	SessionActive    SessionState = "active"
	SessionCompleted SessionState = "completed"
	SessionExpired   SessionState = "expired"
)

// Session tracks one recipient taking one quiz.
type Session struct {
	ID          string          `json:"id"`
	QuizID      string          `json:"quizId"`
	Recipient   string          `json:"recipient"`
	TimeLimit   time.Duration   `json:"timeLimit"`
	CreatedAt   time.Time       `json:"createdAt"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Score       *float64        `json:"score,omitempty"`
	Answers     json.RawMessage `json:"answers,omitempty"`
}

// State derives the lifecycle state at time now.
func (s *Session) State(now time.Time) SessionState {
	switch {
	case s.CompletedAt != nil:
		return SessionCompleted
	case s.StartedAt == nil:
		return SessionPending
	case s.TimeLimit > 0 && now.After(s.StartedAt.Add(s.TimeLimit)):
		return SessionExpired
	default:
		return SessionActive
	}
}

// Deadline returns the completion deadline, or zero when the session has no
// time limit or has not started.
func (s *Session) Deadline() time.Time {
	if s.StartedAt == nil || s.TimeLimit <= 0 {
		return time.Time{}
	}
	return s.StartedAt.Add(s.TimeLimit)
}

// CreateSession registers a pending session for a stored quiz. timeLimit 0
// means untimed.
func (s *Store) CreateSession(ctx context.Context, quizID, recipient string, timeLimit time.Duration) (*Session, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        s.sessID(),
		QuizID:    quizID,
		Recipient: recipient,
		TimeLimit: timeLimit,
		CreatedAt: s.now().Truncate(time.Second),
	}
	_, err := dbopen.Exec(ctx, s.db, `
		INSERT INTO sessions (id, quiz_id, recipient, time_limit_s, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.QuizID, sess.Recipient, int64(timeLimit/time.Second), sess.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("quizstore: insert session: %w", err)
	}

	s.cfg.Logger.Info("session created",
		"session_id", sess.ID, "quiz_id", quizID, "recipient", recipient,
		"time_limit", timeLimit)
	return sess, nil
}

// StartSession marks a pending session as started, stamping the clock the
// time limit counts from. Starting twice or starting a completed session
// fails with ErrSessionState.
func (s *Store) StartSession(ctx context.Context, id string) (*Session, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State(s.now()) != SessionPending {
		return nil, fmt.Errorf("%w: session %s is %s, want pending", ErrSessionState, id, sess.State(s.now()))
	}

	startedAt := s.now().Truncate(time.Second)
	if _, err := dbopen.Exec(ctx, s.db,
		`UPDATE sessions SET started_at = ? WHERE id = ?`, startedAt.Unix(), id); err != nil {
		return nil, fmt.Errorf("quizstore: start session: %w", err)
	}
	sess.StartedAt = &startedAt
	return sess, nil
}

// CompleteSession records answers and score for an active session. An
// elapsed time limit yields ErrSessionExpired; the session stays
// incomplete.
func (s *Store) CompleteSession(ctx context.Context, id string, score float64, answers json.RawMessage) (*Session, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	switch state := sess.State(now); state {
	case SessionActive:
	case SessionExpired:
		return nil, fmt.Errorf("%w: session %s deadline was %s",
			ErrSessionExpired, id, sess.Deadline().Format(time.RFC3339))
	default:
		return nil, fmt.Errorf("%w: session %s is %s, want active", ErrSessionState, id, state)
	}

	completedAt := now.Truncate(time.Second)
	if answers == nil {
		answers = json.RawMessage("null")
	}
	if _, err := dbopen.Exec(ctx, s.db, `
		UPDATE sessions SET completed_at = ?, score = ?, answers_json = ?
		WHERE id = ?`, completedAt.Unix(), score, string(answers), id); err != nil {
		return nil, fmt.Errorf("quizstore: complete session: %w", err)
	}

	sess.CompletedAt = &completedAt
	sess.Score = &score
	sess.Answers = answers
	s.cfg.Logger.Info("session completed",
		"session_id", id, "quiz_id", sess.QuizID, "score", score)
	return sess, nil
}

// GetSession fetches one session by id.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var (
		sess        Session
		timeLimitS  int64
		createdAt   int64
		startedAt   sql.NullInt64
		completedAt sql.NullInt64
		score       sql.NullFloat64
		answers     sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quiz_id, recipient, time_limit_s, created_at, started_at, completed_at, score, answers_json
		FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.QuizID, &sess.Recipient, &timeLimitS, &createdAt,
			&startedAt, &completedAt, &score, &answers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("quizstore: get session: %w", err)
	}

	sess.TimeLimit = time.Duration(timeLimitS) * time.Second
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	if startedAt.Valid {
		t := time.Unix(startedAt.Int64, 0).UTC()
		sess.StartedAt = &t
	}
	if completedAt.Valid {
		t := time.Unix(completedAt.Int64, 0).UTC()
		sess.CompletedAt = &t
	}
	if score.Valid {
		sess.Score = &score.Float64
	}
	if answers.Valid {
		sess.Answers = json.RawMessage(answers.String)
	}
	return &sess, nil
}
