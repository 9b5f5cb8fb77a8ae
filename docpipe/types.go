// CLAUDE:SUMMARY Defines Format, Section, ContentMetadata, and ExtractedContent types for the docpipe extraction pipeline.
package docpipe

// Format identifies a source document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
	FormatHTML Format = "html"
)

// SupportedFormats lists all formats Extract accepts.
func SupportedFormats() []string {
	return []string{
		string(FormatPDF), string(FormatDocx),
		string(FormatTXT), string(FormatMD), string(FormatHTML),
	}
}

// SectionType classifies a structural block of the normalized text.
type SectionType string

const (
	SectionHeading   SectionType = "heading"
	SectionParagraph SectionType = "paragraph"
	SectionList      SectionType = "list"
	SectionTable     SectionType = "table"
	SectionUnknown   SectionType = "unknown"
)

// Quality grades how usable an extraction is for downstream generation.
// It only ever moves downward: detected issues downgrade, nothing upgrades.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// Section is a classified structural unit of the document, in original order.
// A heading carries Title == Content.
type Section struct {
	Title      string      `json:"title,omitempty"`
	Content    string      `json:"content"`
	Type       SectionType `json:"type"`
	Confidence float64     `json:"confidence"` // 0..1
}

// ContentMetadata describes document-level properties of one extraction.
type ContentMetadata struct {
	WordCount    int      `json:"word_count"`
	PageCount    int      `json:"page_count,omitempty"`
	HasImages    bool     `json:"has_images"`
	HasStructure bool     `json:"has_structure"`
	Language     string   `json:"language,omitempty"`
	Quality      Quality  `json:"quality"`
	Warnings     []string `json:"warnings"`
}

// ExtractedContent is the immutable result of extracting one document.
// WordCount always matches the word count of Text; Sections partition the
// text into classified blocks in document order (gaps are allowed).
type ExtractedContent struct {
	Text     string          `json:"text"`
	Metadata ContentMetadata `json:"metadata"`
	Sections []Section       `json:"sections"`
}
