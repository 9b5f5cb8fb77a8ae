package docpipe

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"doc.pdf", FormatPDF},
		{"doc.docx", FormatDocx},
		{"doc.txt", FormatTXT},
		{"doc.text", FormatTXT},
		{"doc.md", FormatMD},
		{"doc.markdown", FormatMD},
		{"doc.html", FormatHTML},
		{"doc.htm", FormatHTML},
	}
	for _, tt := range tests {
		f, err := DetectFormat(tt.name)
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", tt.name, err)
			continue
		}
		if f != tt.format {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.name, f, tt.format)
		}
	}

	if _, err := DetectFormat("file.xyz"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_Text(t *testing.T) {
	pipe := New(Config{})
	raw := "Chapter One\n\nThe story begins with a long description of the setting and its people.\n\nAnother paragraph follows with additional detail about the region."

	content, err := pipe.Extract(context.Background(), []byte(raw), FormatTXT)
	if err != nil {
		t.Fatal(err)
	}
	if countWords(content.Text) != content.Metadata.WordCount {
		t.Errorf("word count %d does not match text", content.Metadata.WordCount)
	}
	if len(content.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(content.Sections))
	}
	if content.Sections[0].Type != SectionHeading {
		t.Errorf("sections[0] = %s, want heading", content.Sections[0].Type)
	}
	if !content.Metadata.HasStructure {
		t.Error("expected HasStructure with a detected heading")
	}
}

func TestExtract_Markdown(t *testing.T) {
	pipe := New(Config{})
	raw := "# My Title\n\nThis is a paragraph with enough words to pass the filter.\n\n## Section Two\n\n- item one here\n- item two here\n"

	content, err := pipe.Extract(context.Background(), []byte(raw), FormatMD)
	if err != nil {
		t.Fatal(err)
	}

	var headings, lists int
	for _, s := range content.Sections {
		switch s.Type {
		case SectionHeading:
			headings++
			if s.Title != s.Content {
				t.Errorf("heading title %q != content %q", s.Title, s.Content)
			}
		case SectionList:
			lists++
		}
	}
	if headings != 2 {
		t.Errorf("got %d headings, want 2", headings)
	}
	if lists != 1 {
		t.Errorf("got %d lists, want 1", lists)
	}
}

func makeDocx(t *testing.T, docXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtract_Docx(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Course Overview</w:t></w:r></w:p>
    <w:p><w:r><w:t>This module introduces the core concepts with plenty of explanatory text.</w:t></w:r></w:p>
    <w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>First learning objective</w:t></w:r></w:p>
  </w:body>
</w:document>`

	pipe := New(Config{})
	content, err := pipe.Extract(context.Background(), makeDocx(t, docXML), FormatDocx)
	if err != nil {
		t.Fatal(err)
	}

	if len(content.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(content.Sections))
	}
	if content.Sections[0].Type != SectionHeading || content.Sections[0].Title != "Course Overview" {
		t.Errorf("sections[0] = %+v, want Course Overview heading", content.Sections[0])
	}
	if content.Sections[1].Type != SectionParagraph {
		t.Errorf("sections[1].Type = %s, want paragraph", content.Sections[1].Type)
	}
	if content.Sections[2].Type != SectionList {
		t.Errorf("sections[2].Type = %s, want list", content.Sections[2].Type)
	}
	if !strings.Contains(content.Text, "core concepts") {
		t.Errorf("text missing paragraph content: %q", content.Text)
	}
}

func TestExtract_DocxCorrupt(t *testing.T) {
	pipe := New(Config{})
	_, err := pipe.Extract(context.Background(), []byte("not a zip archive"), FormatDocx)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_PDFCorrupt(t *testing.T) {
	pipe := New(Config{})
	_, err := pipe.Extract(context.Background(), []byte("%PDF-garbage-not-a-real-file"), FormatPDF)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_HTML(t *testing.T) {
	raw := `<html><head><title>Page</title><style>p{color:red}</style></head>
<body><nav>skip this</nav>
<h1>Main Topic</h1>
<p>A visible paragraph with enough content to classify properly.</p>
<p style="display:none">hidden text to drop</p>
<ul><li>alpha item</li><li>beta item</li></ul>
</body></html>`

	pipe := New(Config{})
	content, err := pipe.Extract(context.Background(), []byte(raw), FormatHTML)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(content.Text, "hidden text") {
		t.Error("hidden node text leaked into extraction")
	}
	if strings.Contains(content.Text, "skip this") {
		t.Error("nav boilerplate leaked into extraction")
	}
	if content.Sections[0].Type != SectionHeading || content.Sections[0].Title != "Main Topic" {
		t.Errorf("sections[0] = %+v, want Main Topic heading", content.Sections[0])
	}
}

func TestExtract_EmptyResult(t *testing.T) {
	pipe := New(Config{})
	content, err := pipe.Extract(context.Background(), []byte("   \n\t  \n"), FormatTXT)
	if err != nil {
		t.Fatal(err)
	}
	if content.Metadata.Quality != QualityLow {
		t.Errorf("quality = %s, want low", content.Metadata.Quality)
	}
	if len(content.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(content.Sections))
	}
	if len(content.Metadata.Warnings) == 0 {
		t.Error("expected a warning on empty extraction")
	}
}

func TestExtract_SizeLimit(t *testing.T) {
	pipe := New(Config{MaxBytes: 10})
	_, err := pipe.Extract(context.Background(), []byte("this is more than ten bytes"), FormatTXT)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestExtract_EmptyBuffer(t *testing.T) {
	pipe := New(Config{})
	if _, err := pipe.Extract(context.Background(), nil, FormatTXT); !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}
