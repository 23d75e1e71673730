// Package errors defines parse errors for the HTML5 parser.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned when a feature is not yet implemented.
var ErrNotImplemented = errors.New("not implemented")

// ParseError represents a single parse error with location information.
type ParseError struct {
	// Code is the error code (e.g., "unexpected-null-character").
	// These codes follow the WHATWG HTML5 specification.
	Code string

	// Message is a human-readable error message.
	Message string

	// Offset is the 0-based byte/rune offset where the error occurred.
	Offset int

	// Line is the 1-based line number where the error occurred.
	Line int

	// Column is the 1-based column number where the error occurred.
	Column int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors is a collection of parse errors.
// It implements the error interface so it can be returned from Parse.
type ParseErrors []*ParseError

// Error implements the error interface.
func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d parse errors:\n", len(e)))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying errors for errors.Is/As support.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// Position identifies a location in the input stream.
type Position struct {
	// Offset is the 0-based rune offset from the start of the input.
	Offset int

	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column number.
	Column int
}

// Record pairs a parse-error code with the position it was observed at.
type Record struct {
	Position Position
	Code     string
}

// Logger accumulates parse errors during tokenization and tree
// construction, recording at most one Record per (position, code) pair --
// repeated reports of the same error at the same spot (common when a state
// re-enters on reconsume) are silently folded into the first.
type Logger struct {
	records []Record
	seen    map[Position]map[string]struct{}
}

// NewLogger returns an empty Logger.
func NewLogger() *Logger {
	return &Logger{seen: make(map[Position]map[string]struct{})}
}

// Add records code at pos, unless an identical (pos, code) pair was already
// recorded.
func (l *Logger) Add(code string, pos Position) {
	codes, ok := l.seen[pos]
	if !ok {
		codes = make(map[string]struct{})
		l.seen[pos] = codes
	}
	if _, dup := codes[code]; dup {
		return
	}
	codes[code] = struct{}{}
	l.records = append(l.records, Record{Position: pos, Code: code})
}

// Records returns every recorded error in report order.
func (l *Logger) Records() []Record {
	return l.records
}

// Len reports how many distinct errors have been recorded.
func (l *Logger) Len() int {
	return len(l.records)
}

// ParseErrors converts the logger's records into a ParseErrors value,
// resolving each code's human-readable message via Message.
func (l *Logger) ParseErrors() ParseErrors {
	if len(l.records) == 0 {
		return nil
	}
	out := make(ParseErrors, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, &ParseError{
			Code:    r.Code,
			Message: Message(r.Code),
			Offset:  r.Position.Offset,
			Line:    r.Position.Line,
			Column:  r.Position.Column,
		})
	}
	return out
}

// SelectorError represents an error in CSS selector parsing.
type SelectorError struct {
	// Selector is the original selector string.
	Selector string

	// Position is the character position where the error occurred.
	Position int

	// Message describes the error.
	Message string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at position %d: %s", e.Selector, e.Position, e.Message)
}
