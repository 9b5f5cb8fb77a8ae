package docpipe

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "docpipe-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	pipe := New(Config{})
	srv := mcp.NewServer(testMCPImpl, nil)
	pipe.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Formats(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docpipe_formats", map[string]any{})

	var resp struct {
		Formats []string `json:"formats"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Formats) != 5 {
		t.Errorf("expected 5 formats, got %d: %v", len(resp.Formats), resp.Formats)
	}
	expected := map[string]bool{"pdf": true, "docx": true, "txt": true, "md": true, "html": true}
	for _, f := range resp.Formats {
		if !expected[f] {
			t.Errorf("unexpected format %q", f)
		}
	}
}

func TestMCP_Detect(t *testing.T) {
	session := mcpSession(t)

	tests := []struct {
		path   string
		format string
	}{
		{"report.pdf", "pdf"},
		{"notes.md", "md"},
		{"lecture.docx", "docx"},
		{"page.html", "html"},
	}
	for _, tt := range tests {
		text := mcpCallTool(t, session, "docpipe_detect", map[string]any{"path": tt.path})
		var resp struct {
			Format string `json:"format"`
		}
		json.Unmarshal([]byte(text), &resp)
		if resp.Format != tt.format {
			t.Errorf("detect(%q) = %q, want %q", tt.path, resp.Format, tt.format)
		}
	}
}

func TestMCP_DetectUnsupported(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "docpipe_detect",
		Arguments: map[string]any{"path": "archive.tar.gz"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unsupported extension")
	}
}

func TestMCP_Extract_Text(t *testing.T) {
	session := mcpSession(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	os.WriteFile(path, []byte("Hello World\nSecond line of content here."), 0644)

	text := mcpCallTool(t, session, "docpipe_extract", map[string]any{"path": path})

	var content ExtractedContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if content.Text == "" {
		t.Error("expected non-empty Text")
	}
	if content.Metadata.WordCount == 0 {
		t.Error("expected non-zero WordCount")
	}
}

func TestMCP_Extract_Markdown(t *testing.T) {
	session := mcpSession(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	os.WriteFile(path, []byte("# Title\n\nParagraph text here.\n\n## Section\n\nMore content."), 0644)

	text := mcpCallTool(t, session, "docpipe_extract", map[string]any{"path": path})

	var content ExtractedContent
	json.Unmarshal([]byte(text), &content)
	if len(content.Sections) == 0 {
		t.Fatal("expected sections")
	}
	if content.Sections[0].Type != SectionHeading {
		t.Errorf("first section type = %q, want heading", content.Sections[0].Type)
	}
	if !content.Metadata.HasStructure {
		t.Error("expected HasStructure")
	}
}
