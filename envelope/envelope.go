// Package envelope normalizes the upstream's two wire formats — nested
// JSON envelopes and tag-based XML row/column documents — into one
// canonical shape. It decides the format by sniffing the first
// non-whitespace byte of the body.
package envelope

import (
	"bytes"
	"fmt"
)

// Envelope is the canonical response shape every wire format converges on.
type Envelope struct {
	CurrentCount int
	MatchCount   int
	Page         int
	PerPage      int
	TotalCount   int
	Items        []map[string]any
}

// Format identifies the detected wire format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatUnknown Format = "unknown"
)

// ParseError is a hard parsing failure on the top-level body. Malformed
// bodies are assumed deterministic, so this error is never retried.
type ParseError struct {
	// Format is the format that failed to parse.
	Format Format
	// Raw preserves the offending content for diagnostics.
	Raw []byte
	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("envelope: parse %s body: %v", e.Format, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// utf8BOM is stripped before sniffing; the upstream occasionally prefixes
// XML documents with it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize classifies the body and converts it into the canonical
// envelope. Leading whitespace and a UTF-8 BOM are trimmed before the
// first byte is read. Unrecognized content yields an empty envelope, not
// an error; only a malformed JSON or XML document fails.
func Normalize(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(trimmed) == 0 {
		return &Envelope{}, nil
	}

	switch trimmed[0] {
	case '{':
		return normalizeJSON(trimmed)
	case '<':
		return normalizeXML(trimmed)
	default:
		// Lenient fallback for plain or alien content.
		return &Envelope{}, nil
	}
}
