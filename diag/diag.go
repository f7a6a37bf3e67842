// Package diag is the shared error model for the lexer and parser: both
// accumulate diagnostics into a list rather than aborting on the first
// fault.
package diag

import "fmt"

// Error is a single lex or parse diagnostic.
type Error struct {
	Message string
	Index   int // code-point offset into the source
	Line    int
	Column  int
	Token   string // offending token text; empty for lex errors
}

func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%d:%d: %s (at %q)", e.Line, e.Column, e.Message, e.Token)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// List is an ordered collection of diagnostics. It implements error so that
// a caller may treat the accumulated failures as a single aggregate.
type List []*Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		s := l[0].Error()
		for _, e := range l[1:] {
			s += "; " + e.Error()
		}
		return s
	}
}

// Sink accumulates diagnostics. Both *lexer.Lexer and *parser.Parser hold a
// pointer to one (a parser shares its sink with its lexer) so callers can
// inspect errors without the two packages depending on each other's
// concrete error type.
type Sink struct {
	errors List
}

// Add appends a diagnostic to the sink.
func (s *Sink) Add(e *Error) {
	s.errors = append(s.errors, e)
}

// Errors returns the accumulated diagnostics.
func (s *Sink) Errors() List {
	return s.errors
}

// Dedup removes consecutive errors that share the same token index and an
// identical message, keeping only the first occurrence. Called once after a
// full parse pass.
func (s *Sink) Dedup() {
	if len(s.errors) < 2 {
		return
	}
	out := s.errors[:1]
	for _, e := range s.errors[1:] {
		last := out[len(out)-1]
		if e.Index == last.Index && e.Message == last.Message {
			continue
		}
		out = append(out, e)
	}
	s.errors = out
}
