package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the parser, the results store and the query engine.
// Callers match them with errors.Is.
var (
	ErrParse           = errors.New("log line does not match the expected format")
	ErrSourceNotFound  = errors.New("log file not found")
	ErrResultsNotFound = errors.New("results file not found")
	ErrCorrupt         = errors.New("results file is corrupt")
	ErrIO              = errors.New("results file could not be written")
	ErrTermNotFound    = errors.New("term not found")
	ErrInvalidLimit    = errors.New("limit must be a non-negative integer")
)

// ParseError reports which extraction rule failed on a log line.
type ParseError struct {
	Line      int // 1-based line number, 0 when unknown
	Field     string
	Text      string
	Unmatched []string // every field whose rule failed, Field first
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("no %s found in %q", e.Field, e.Text)
	if len(e.Unmatched) > 1 {
		msg += fmt.Sprintf(" (unmatched: %s)", strings.Join(e.Unmatched, ", "))
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// TermNotFoundError is returned when a search term is a key in neither index.
type TermNotFoundError struct {
	Term string
}

func (e *TermNotFoundError) Error() string {
	return fmt.Sprintf("term %q not found in %s or %s index", e.Term, DirectionIP, DirectionEndpoint)
}

// Unwrap lets errors.Is(err, ErrTermNotFound) match.
func (e *TermNotFoundError) Unwrap() error {
	return ErrTermNotFound
}
