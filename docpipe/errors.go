// CLAUDE:SUMMARY Sentinel errors for docpipe: decoder failure, unsupported format, oversized input.
package docpipe

import "errors"

// ErrExtraction is returned when the underlying decoder fails on a corrupt,
// encrypted, or otherwise unreadable document. An empty-but-decodable
// document is NOT an error; it yields a low-quality ExtractedContent.
var ErrExtraction = errors.New("docpipe: extraction failed")

// ErrUnsupportedFormat is returned for a format Extract does not handle.
var ErrUnsupportedFormat = errors.New("docpipe: unsupported format")

// ErrTooLarge is returned when the input buffer exceeds Config.MaxBytes.
var ErrTooLarge = errors.New("docpipe: input exceeds size limit")
