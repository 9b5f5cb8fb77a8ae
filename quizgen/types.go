// CLAUDE:SUMMARY Quiz data model: generation params, quiz/section/question value objects, generation result metadata.
package quizgen

import (
	"fmt"
	"time"

	"github.com/hazyhaar/quizforge/docpipe"
)

// Difficulty of generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType discriminates question variants.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "true-false"
)

// GenerationParams describes one generation request. Immutable once
// validated; the pipeline never mutates it.
type GenerationParams struct {
	NumQuestions  int            `json:"numQuestions" yaml:"num_questions"`
	Difficulty    Difficulty     `json:"difficulty" yaml:"difficulty"`
	Language      string         `json:"language" yaml:"language"`
	QuestionTypes []QuestionType `json:"questionTypes" yaml:"question_types"`
	QuizName      string         `json:"quizName,omitempty" yaml:"quiz_name"`
}

// Validate checks ranges and fills defaults: medium difficulty, both
// question types, language "en".
func (p *GenerationParams) Validate() error {
	if p.NumQuestions < 1 || p.NumQuestions > 50 {
		return fmt.Errorf("numQuestions %d out of range [1,50]", p.NumQuestions)
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyMedium
	}
	switch p.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", p.Difficulty)
	}
	if len(p.QuestionTypes) == 0 {
		p.QuestionTypes = []QuestionType{QuestionMCQ, QuestionTrueFalse}
	}
	for _, qt := range p.QuestionTypes {
		switch qt {
		case QuestionMCQ, QuestionTrueFalse:
		default:
			return fmt.Errorf("unknown question type %q", qt)
		}
	}
	if p.Language == "" {
		p.Language = "en"
	}
	return nil
}

// Quiz is the validated generation output.
type Quiz struct {
	Meta     QuizMeta      `json:"meta"`
	Sections []QuizSection `json:"sections"`
}

// QuizMeta carries document-level quiz attributes. NumQuestions equals the
// total question count across all sections after repair.
type QuizMeta struct {
	Title        string    `json:"title"`
	Language     string    `json:"language"`
	NumQuestions int       `json:"numQuestions"`
	CreatedAt    time.Time `json:"createdAt"`
}

// QuizSection groups an ordered, non-empty run of questions.
type QuizSection struct {
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// Option is one MCQ choice.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is the tagged union of question variants, keyed on Type.
// MCQ questions carry exactly four Options and a CorrectOptionID among
// them; true-false questions carry a non-nil Answer. Handling code must
// switch on Type with a default-case failure.
type Question struct {
	ID              string       `json:"id"`
	Type            QuestionType `json:"type"`
	Prompt          string       `json:"prompt"`
	Options         []Option     `json:"options,omitempty"`
	CorrectOptionID string       `json:"correctOptionId,omitempty"`
	Answer          *bool        `json:"answer,omitempty"`
	Explanation     string       `json:"explanation"`
	Difficulty      Difficulty   `json:"difficulty,omitempty"`
}

// CountQuestions returns the total question count across sections.
func (q *Quiz) CountQuestions() int {
	n := 0
	for _, s := range q.Sections {
		n += len(s.Questions)
	}
	return n
}

// Metadata reports how a quiz was produced, for conveying coverage and
// source quality to the caller.
type Metadata struct {
	SourceQuality docpipe.Quality `json:"sourceQuality"`
	ChunksUsed    int             `json:"chunksUsed"`
	ChunksTotal   int             `json:"chunksTotal"`
	Warnings      []string        `json:"warnings,omitempty"`
	PromptTokens  int             `json:"promptTokens"`
	Duration      time.Duration   `json:"duration"`
}

// Result bundles the validated quiz with its generation metadata.
type Result struct {
	Quiz     *Quiz    `json:"quiz"`
	Metadata Metadata `json:"metadata"`
}
