// CLAUDE:SUMMARY MCP tool surface for quizgen: generate a quiz from a document file path.
package quizgen

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/quizforge/docpipe"
	"github.com/hazyhaar/quizforge/kit"
)

type generateReq struct {
	Path          string   `json:"path"`
	NumQuestions  int      `json:"numQuestions"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Language      string   `json:"language,omitempty"`
	QuestionTypes []string `json:"questionTypes,omitempty"`
	QuizName      string   `json:"quizName,omitempty"`
}

// RegisterMCP registers the quiz generation tool on an MCP server. The
// pipeline extracts the document before generation.
func (g *Generator) RegisterMCP(srv *mcp.Server, pipe *docpipe.Pipeline) {
	tool := &mcp.Tool{
		Name:        "quizgen_generate",
		Description: "Generate a quiz (MCQ and true/false questions) from a document file.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":          map[string]any{"type": "string", "description": "Document file path (pdf, docx, md, txt, html)"},
				"numQuestions":  map[string]any{"type": "integer", "description": "Number of questions (1-50)"},
				"difficulty":    map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
				"language":      map[string]any{"type": "string", "description": "ISO 639-1 language code (default en)"},
				"questionTypes": map[string]any{"type": "array", "items": map[string]any{"type": "string", "enum": []string{"mcq", "true-false"}}},
				"quizName":      map[string]any{"type": "string", "description": "Title override for the quiz"},
			},
			"required": []string{"path", "numQuestions"},
		},
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*generateReq)
		format, err := docpipe.DetectFormat(r.Path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, err
		}
		content, err := pipe.Extract(ctx, data, format)
		if err != nil {
			return nil, err
		}
		params := GenerationParams{
			NumQuestions: r.NumQuestions,
			Difficulty:   Difficulty(r.Difficulty),
			Language:     r.Language,
			QuizName:     r.QuizName,
		}
		for _, t := range r.QuestionTypes {
			params.QuestionTypes = append(params.QuestionTypes, QuestionType(t))
		}
		return g.Generate(ctx, content, params)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r generateReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
