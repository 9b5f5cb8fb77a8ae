// CLAUDE:SUMMARY Generation pipeline: quality gate, chunk, select, prompt, one model call, parse, repair, validate.
// Package quizgen turns extracted document content into a validated quiz
// via a language model. The pipeline per request is strictly sequential:
// quality precondition, chunking, budget selection, prompt construction,
// one synchronous model call, JSON parse, lenient repair, strict schema
// validation. Every failure is terminal for the request; retries are a
// caller-level policy.
//
// Model output is untrusted. Repair (repair.go) normalizes structure and
// never fails; validation (validate.go) is the only acceptance gate. The
// two phases stay separate so failures remain diagnosable.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hazyhaar/quizforge/chunk"
	"github.com/hazyhaar/quizforge/docpipe"
	"github.com/hazyhaar/quizforge/horoschat"
)

// Config tunes the generation pipeline.
type Config struct {
	// ChunkTargetTokens is the soft per-chunk budget. Default: 2000 —
	// large enough to preserve surrounding context in each excerpt.
	ChunkTargetTokens int `json:"chunk_target_tokens" yaml:"chunk_target_tokens"`

	// ChunkMaxTokens is the hard per-chunk ceiling. Default: 3000.
	ChunkMaxTokens int `json:"chunk_max_tokens" yaml:"chunk_max_tokens"`

	// ChunkOverlapTokens is the cross-chunk overlap. Default: 100.
	ChunkOverlapTokens int `json:"chunk_overlap_tokens" yaml:"chunk_overlap_tokens"`

	// GenerationTokenBudget caps the combined token estimate of the
	// excerpts sent to the model. Default: 20000. Tunable per model
	// context window; it bounds coverage of very large documents.
	GenerationTokenBudget int `json:"generation_token_budget" yaml:"generation_token_budget"`

	// Logger for pipeline progress. Defaults to slog.Default().
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.ChunkTargetTokens <= 0 {
		c.ChunkTargetTokens = 2000
	}
	if c.ChunkMaxTokens <= 0 {
		c.ChunkMaxTokens = 3000
	}
	if c.ChunkOverlapTokens <= 0 {
		c.ChunkOverlapTokens = 100
	}
	if c.GenerationTokenBudget <= 0 {
		c.GenerationTokenBudget = 20000
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Generator runs the document-to-quiz pipeline against one model client.
// Safe for concurrent use; each request works on independent values.
type Generator struct {
	cfg  Config
	chat horoschat.Completer
}

// New creates a Generator using chat for model calls.
func New(chat horoschat.Completer, cfg Config) *Generator {
	cfg.defaults()
	return &Generator{cfg: cfg, chat: chat}
}

// Generate produces a validated quiz from extracted content. The model is
// invoked exactly once; cancellation and timeouts ride on ctx.
func (g *Generator) Generate(ctx context.Context, content *docpipe.ExtractedContent, params GenerationParams) (*Result, error) {
	start := time.Now()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if content == nil || content.Metadata.WordCount == 0 {
		return nil, ErrEmptyContent
	}
	if content.Metadata.Quality == docpipe.QualityLow && content.Metadata.WordCount < 200 {
		return nil, fmt.Errorf("%w: quality %s with %d words",
			ErrContentTooLimited, content.Metadata.Quality, content.Metadata.WordCount)
	}

	chunks := chunk.Split(content, chunk.Options{
		TargetTokens:      g.cfg.ChunkTargetTokens,
		MaxTokens:         g.cfg.ChunkMaxTokens,
		OverlapTokens:     g.cfg.ChunkOverlapTokens,
		PreserveStructure: true,
	})
	if len(chunks) == 0 {
		return nil, ErrNoContent
	}

	selected := chunk.SelectWithinBudget(chunks, g.cfg.GenerationTokenBudget)
	system := buildSystemPrompt(params)
	user := buildUserPrompt(content, selected, len(chunks))
	promptTokens := chunk.EstimateTokens(system) + chunk.EstimateTokens(user)

	g.cfg.Logger.Info("invoking model",
		"model", g.chat.Model(),
		"chunks_used", len(selected),
		"chunks_total", len(chunks),
		"prompt_tokens", promptTokens,
		"num_questions", params.NumQuestions)

	out, err := g.chat.Complete(ctx, horoschat.Request{
		System: system,
		User:   user,
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}

	quiz, err := parseAndRepair(out, params)
	if err != nil {
		return nil, err
	}
	if params.QuizName != "" {
		quiz.Meta.Title = params.QuizName
	}

	return &Result{
		Quiz: quiz,
		Metadata: Metadata{
			SourceQuality: content.Metadata.Quality,
			ChunksUsed:    len(selected),
			ChunksTotal:   len(chunks),
			Warnings:      content.Metadata.Warnings,
			PromptTokens:  promptTokens,
			Duration:      time.Since(start),
		},
	}, nil
}

// parseAndRepair decodes the model reply, runs the lenient repair pass,
// then the strict validator.
func parseAndRepair(out string, params GenerationParams) (*Quiz, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	repaired := repairQuiz(raw, params, time.Now().UTC())
	data, err := json.Marshal(repaired)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var quiz Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		// Valid JSON, repaired structure, but field types the schema
		// cannot absorb (e.g. numeric prompt).
		return nil, &SchemaValidationError{Violations: []string{err.Error()}}
	}
	if verr := validateQuiz(&quiz); verr != nil {
		return nil, verr
	}
	return &quiz, nil
}

// stripCodeFence unwraps a reply packaged in a markdown code fence, which
// some instruction models emit despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
