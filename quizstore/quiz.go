// CLAUDE:SUMMARY Quiz rows: save a generated quiz with its provenance, fetch by id, list summaries.
package quizstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/quizforge/dbopen"
	"github.com/hazyhaar/quizforge/docpipe"
	"github.com/hazyhaar/quizforge/quizgen"
)

// StoredQuiz is a persisted quiz with its generation provenance.
type StoredQuiz struct {
	ID            string          `json:"id"`
	Quiz          *quizgen.Quiz   `json:"quiz"`
	SourceQuality docpipe.Quality `json:"sourceQuality"`
	Warnings      []string        `json:"warnings,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// QuizSummary is the listing projection of a stored quiz.
type QuizSummary struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Language      string          `json:"language"`
	NumQuestions  int             `json:"numQuestions"`
	SourceQuality docpipe.Quality `json:"sourceQuality"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SaveQuiz persists a generation result and returns its assigned id.
func (s *Store) SaveQuiz(ctx context.Context, quiz *quizgen.Quiz, meta quizgen.Metadata) (string, error) {
	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return "", fmt.Errorf("quizstore: marshal quiz: %w", err)
	}
	warnings := meta.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return "", fmt.Errorf("quizstore: marshal warnings: %w", err)
	}

	id := s.quizID()
	_, err = dbopen.Exec(ctx, s.db, `
		INSERT INTO quizzes (id, title, language, num_questions, quiz_json, source_quality, warnings_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, quiz.Meta.Title, quiz.Meta.Language, quiz.Meta.NumQuestions,
		string(quizJSON), string(meta.SourceQuality), string(warningsJSON),
		s.now().Unix())
	if err != nil {
		return "", fmt.Errorf("quizstore: insert quiz: %w", err)
	}

	s.cfg.Logger.Info("quiz saved",
		"quiz_id", id,
		"title", quiz.Meta.Title,
		"num_questions", quiz.Meta.NumQuestions,
		"source_quality", meta.SourceQuality)
	return id, nil
}

// GetQuiz fetches one stored quiz by id.
func (s *Store) GetQuiz(ctx context.Context, id string) (*StoredQuiz, error) {
	var (
		quizJSON     string
		quality      string
		warningsJSON string
		createdAt    int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT quiz_json, source_quality, warnings_json, created_at
		FROM quizzes WHERE id = ?`, id).
		Scan(&quizJSON, &quality, &warningsJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("quizstore: get quiz: %w", err)
	}

	var quiz quizgen.Quiz
	if err := json.Unmarshal([]byte(quizJSON), &quiz); err != nil {
		return nil, fmt.Errorf("quizstore: decode quiz %s: %w", id, err)
	}
	var warnings []string
	if err := json.Unmarshal([]byte(warningsJSON), &warnings); err != nil {
		return nil, fmt.Errorf("quizstore: decode warnings %s: %w", id, err)
	}

	return &StoredQuiz{
		ID:            id,
		Quiz:          &quiz,
		SourceQuality: docpipe.Quality(quality),
		Warnings:      warnings,
		CreatedAt:     time.Unix(createdAt, 0).UTC(),
	}, nil
}

// ListQuizzes returns summaries of stored quizzes, newest first, capped at
// limit (0 means 100).
func (s *Store) ListQuizzes(ctx context.Context, limit int) ([]QuizSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, language, num_questions, source_quality, created_at
		FROM quizzes ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("quizstore: list quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizSummary
	for rows.Next() {
		var (
			q         QuizSummary
			quality   string
			createdAt int64
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.Language, &q.NumQuestions, &quality, &createdAt); err != nil {
			return nil, fmt.Errorf("quizstore: scan quiz row: %w", err)
		}
		q.SourceQuality = docpipe.Quality(quality)
		q.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, q)
	}
	return out, rows.Err()
}
