// Package codec implements the line-oriented serialization format used by
// every flat-file store: an ordered list of opaque string fields is encoded
// into exactly one line of text and decoded back without loss, regardless of
// which characters the fields contain.
package codec

import (
	"fmt"
	"strings"
)

const (
	// segmentContainer wraps every encoded field. The delimiter only ever
	// appears between containers and carries no meaning while decoding.
	segmentContainer = '"'
	escapeChar       = '\\'
	segmentDelimiter = ", "
)

// SyntaxError reports malformed input passed to DecodeLine.
type SyntaxError struct {
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("codec: %s at position %d", e.Reason, e.Pos)
}

// EncodeLine renders fields as a single line. Each field is wrapped in the
// container character; inside a field the container, the escape character,
// and line breaks are escaped, so the output never contains a raw newline
// and DecodeLine(EncodeLine(fields)) always round-trips exactly.
func EncodeLine(fields []string) string {
	var b strings.Builder

	for i, field := range fields {
		if i > 0 {
			b.WriteString(segmentDelimiter)
		}

		b.WriteByte(segmentContainer)
		for _, r := range field {
			switch r {
			case escapeChar:
				b.WriteByte(escapeChar)
				b.WriteByte(escapeChar)
			case segmentContainer:
				b.WriteByte(escapeChar)
				b.WriteByte(segmentContainer)
			case '\n':
				b.WriteByte(escapeChar)
				b.WriteByte('n')
			case '\r':
				b.WriteByte(escapeChar)
				b.WriteByte('r')
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte(segmentContainer)
	}

	return b.String()
}

// DecodeLine parses one encoded line back into its fields. Decoding relies
// solely on container open/close transitions: any text between containers,
// including the delimiter, is ignored. An escape character inside an open
// field forces the next character to be taken literally ('n' and 'r' map
// back to the line breaks EncodeLine replaced them with).
func DecodeLine(line string) ([]string, error) {
	fields := []string{}
	var buf strings.Builder

	inSegment := false
	inEscape := false
	for i, r := range line {
		switch {
		case inEscape:
			switch r {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			default:
				buf.WriteRune(r)
			}
			inEscape = false
		case r == escapeChar:
			if !inSegment {
				return nil, &SyntaxError{Pos: i, Reason: "escape outside of field"}
			}
			inEscape = true
		case r == segmentContainer:
			if inSegment {
				fields = append(fields, buf.String())
				buf.Reset()
			}
			inSegment = !inSegment
		case inSegment:
			buf.WriteRune(r)
		}
	}

	if inEscape {
		return nil, &SyntaxError{Pos: len(line), Reason: "dangling escape at end of input"}
	}
	if inSegment {
		return nil, &SyntaxError{Pos: len(line), Reason: "unterminated field"}
	}

	return fields, nil
}
