package docpipe

import (
	"strings"
	"testing"
)

func TestClassifyBlock_Heading(t *testing.T) {
	tests := []string{
		"Introduction to Biology",
		"3.2 Cellular Respiration",
		"CHAPTER SUMMARY",
	}
	for _, block := range tests {
		s := classifyBlock(block)
		if s.Type != SectionHeading {
			t.Errorf("classifyBlock(%q) = %s, want heading", block, s.Type)
		}
		if s.Title != block {
			t.Errorf("heading title %q, want %q", s.Title, block)
		}
	}
}

func TestClassifyBlock_NotHeading(t *testing.T) {
	tests := []string{
		"This sentence ends with a period.",
		"a lowercase fragment without meaning here",
		"Multi\nline\nblock without markers or tabular data",
	}
	for _, block := range tests {
		if s := classifyBlock(block); s.Type == SectionHeading {
			t.Errorf("classifyBlock(%q) = heading, want non-heading", block)
		}
	}
}

func TestClassifyBlock_List(t *testing.T) {
	block := "- first item here\n- second item here\n- third item here"
	if s := classifyBlock(block); s.Type != SectionList {
		t.Errorf("got %s, want list", s.Type)
	}

	numbered := "1. alpha entry\n2. beta entry"
	if s := classifyBlock(numbered); s.Type != SectionList {
		t.Errorf("numbered: got %s, want list", s.Type)
	}
}

func TestClassifyBlock_Table(t *testing.T) {
	block := "name | age | city\nana | 31 | lisbon\nbob | 44 | porto"
	if s := classifyBlock(block); s.Type != SectionTable {
		t.Errorf("got %s, want table", s.Type)
	}
}

func TestDetectSections_TabTable(t *testing.T) {
	// Tab-separated tables must survive normalization and classify as
	// tables, not paragraphs.
	raw := "name \t age \t city\nana\t31\tlisbon\nbob\t44\tporto"
	sections := detectSections(Normalize(raw))
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Type != SectionTable {
		t.Errorf("got %s, want table", sections[0].Type)
	}
}

func TestClassifyBlock_Paragraph(t *testing.T) {
	block := "The mitochondrion is the powerhouse of the cell. It produces ATP through respiration."
	if s := classifyBlock(block); s.Type != SectionParagraph {
		t.Errorf("got %s, want paragraph", s.Type)
	}
}

func TestScoreConfidence_Signals(t *testing.T) {
	wellFormed := scoreConfidence("This is a complete, well-formed sentence about science.")
	fragment := scoreConfidence("tiny bit")
	if wellFormed <= fragment {
		t.Errorf("well-formed sentence (%f) should outscore short fragment (%f)", wellFormed, fragment)
	}

	huge := scoreConfidence("A" + strings.Repeat(" word", 500) + ".")
	if huge >= wellFormed {
		t.Errorf("overlong block (%f) should score below normal sentence (%f)", huge, wellFormed)
	}
}

func TestScoreConfidence_Clamped(t *testing.T) {
	inputs := []string{"", "x", strings.Repeat("A", 3000), "Good sentence: with extras; and signals."}
	for _, in := range inputs {
		c := scoreConfidence(in)
		if c < 0 || c > 1 {
			t.Errorf("confidence %f out of [0,1] for %q", c, in)
		}
	}
}

func TestDetectSections_DropsShortBlocks(t *testing.T) {
	text := "ok\n\nThis block is long enough to survive the noise filter entirely."
	sections := detectSections(text)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if !strings.Contains(sections[0].Content, "noise filter") {
		t.Errorf("wrong surviving section: %q", sections[0].Content)
	}
}

func TestDetectSections_DocumentOrder(t *testing.T) {
	text := "First Heading\n\n" +
		"The opening paragraph discusses the subject at some length today.\n\n" +
		"Second Heading\n\n" +
		"The closing paragraph wraps up the discussion with final remarks."
	sections := detectSections(text)
	if len(sections) != 4 {
		t.Fatalf("got %d sections, want 4", len(sections))
	}
	wantTypes := []SectionType{SectionHeading, SectionParagraph, SectionHeading, SectionParagraph}
	for i, want := range wantTypes {
		if sections[i].Type != want {
			t.Errorf("sections[%d].Type = %s, want %s", i, sections[i].Type, want)
		}
	}
}
