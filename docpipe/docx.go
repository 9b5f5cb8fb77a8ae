// CLAUDE:SUMMARY DOCX extractor: word/document.xml stream parse with heading style, list, and table detection.
package docpipe

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocx parses a .docx buffer by reading word/document.xml from the
// ZIP archive. Returns paragraph-level blocks in document order and whether
// the archive carries embedded media.
func extractDocx(data []byte) ([]docBlock, bool, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, false, fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	hasMedia := false
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
		}
		if strings.HasPrefix(f.Name, "word/media/") {
			hasMedia = true
		}
	}
	if docFile == nil {
		return nil, false, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, false, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var blocks []docBlock
	var currentText strings.Builder
	var inParagraph, inTable, inList bool
	var paragraphStyle string
	tableDepth := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				inTable = true
			case "p":
				inParagraph = true
				inList = false
				currentText.Reset()
				paragraphStyle = ""
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paragraphStyle = attr.Value
						}
					}
				}
			case "numPr":
				if inParagraph {
					inList = true
				}
			}

		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
				inTable = tableDepth > 0
			case "p":
				if !inParagraph {
					continue
				}
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}

				b := docBlock{text: text, kind: SectionParagraph}
				switch {
				case docxHeadingLevel(paragraphStyle) > 0:
					b.kind = SectionHeading
					b.heading = true
				case inTable:
					b.kind = SectionTable
				case inList:
					b.kind = SectionList
				}
				blocks = append(blocks, b)
			}
		}
	}

	return blocks, hasMedia, nil
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Title" → 1, "Subtitle" → 2.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
