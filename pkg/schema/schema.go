// Package schema models the relationship schema of a property graph as
// (source label, relationship type, target label) triples.
//
// The textual form is a comma-separated list of parenthesized triples:
//
//	(Person, KNOWS, Person), (Person, WORKS_AT, Organization)
//
// Whitespace around tokens is insignificant and backtick-quoted identifiers
// are unwrapped. Parsing is strict: text that is not a well-formed triple
// list fails with ErrInvalidSchema instead of being skipped, so a schema typo
// cannot silently change how queries are judged.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSchema reports schema text that does not parse as a triple list.
var ErrInvalidSchema = errors.New("schema: invalid schema text")

// Triple is one allowed relationship shape: (Source)-[:Type]->(Target).
type Triple struct {
	Source string
	Type   string
	Target string
}

// String renders the triple in the canonical text form.
func (t Triple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Source, t.Type, t.Target)
}

// Format holds the delimiters of the schema text form. All four fields must
// be non-empty; start from DefaultFormat.
type Format struct {
	Open      string // opens a triple
	Close     string // closes a triple
	FieldSep  string // separates the three fields of a triple
	TripleSep string // separates triples from each other
}

// DefaultFormat matches "(A, REL, B), (C, REL2, D)".
func DefaultFormat() Format {
	return Format{Open: "(", Close: ")", FieldSep: ",", TripleSep: ","}
}

// Schema is an immutable set of triples indexed by relationship type. Safe
// for concurrent readers once built.
type Schema struct {
	triples []Triple
	byType  map[string][]Triple
}

// Parse reads schema text in the default format.
func Parse(text string) (*Schema, error) {
	return ParseWith(text, DefaultFormat())
}

// ParseWith reads schema text using custom delimiters.
func ParseWith(text string, f Format) (*Schema, error) {
	if f.Open == "" || f.Close == "" || f.FieldSep == "" || f.TripleSep == "" {
		return nil, fmt.Errorf("%w: format has an empty delimiter", ErrInvalidSchema)
	}
	s := &Schema{byType: make(map[string][]Triple)}
	rest := strings.TrimSpace(text)
	if rest == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidSchema)
	}
	for first := true; rest != ""; first = false {
		if !first {
			var ok bool
			if rest, ok = cutToken(rest, f.TripleSep); !ok {
				return nil, fmt.Errorf("%w: expected %q between triples near %q", ErrInvalidSchema, f.TripleSep, snippet(rest))
			}
			if rest == "" {
				break // tolerate a trailing separator
			}
		}
		var ok bool
		if rest, ok = cutToken(rest, f.Open); !ok {
			return nil, fmt.Errorf("%w: expected %q near %q", ErrInvalidSchema, f.Open, snippet(rest))
		}
		body, tail, found := strings.Cut(rest, f.Close)
		if !found {
			return nil, fmt.Errorf("%w: unterminated triple near %q", ErrInvalidSchema, snippet(rest))
		}
		rest = strings.TrimSpace(tail)
		t, err := parseTriple(body, f.FieldSep)
		if err != nil {
			return nil, err
		}
		s.add(t)
	}
	return s, nil
}

func parseTriple(body, fieldSep string) (Triple, error) {
	fields := strings.Split(body, fieldSep)
	if len(fields) != 3 {
		return Triple{}, fmt.Errorf("%w: triple (%s) has %d fields, want 3", ErrInvalidSchema, strings.TrimSpace(body), len(fields))
	}
	t := Triple{
		Source: unquote(fields[0]),
		Type:   unquote(fields[1]),
		Target: unquote(fields[2]),
	}
	if t.Source == "" || t.Type == "" || t.Target == "" {
		return Triple{}, fmt.Errorf("%w: triple (%s) has an empty field", ErrInvalidSchema, strings.TrimSpace(body))
	}
	return t, nil
}

// cutToken strips leading whitespace and the given token. ok is false when
// the token is not next in s.
func cutToken(s, token string) (string, bool) {
	s = strings.TrimSpace(s)
	after, found := strings.CutPrefix(s, token)
	if !found {
		return s, false
	}
	return strings.TrimSpace(after), true
}

func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '`' && field[len(field)-1] == '`' {
		field = strings.TrimSpace(field[1 : len(field)-1])
	}
	return field
}

func snippet(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}

func (s *Schema) add(t Triple) {
	for _, have := range s.byType[t.Type] {
		if have == t {
			return
		}
	}
	s.triples = append(s.triples, t)
	s.byType[t.Type] = append(s.byType[t.Type], t)
}

// Len returns the number of distinct triples.
func (s *Schema) Len() int { return len(s.triples) }

// Triples returns a copy of all triples in declaration order.
func (s *Schema) Triples() []Triple {
	out := make([]Triple, len(s.triples))
	copy(out, s.triples)
	return out
}

// Types returns the distinct relationship types, sorted.
func (s *Schema) Types() []string {
	out := make([]string, 0, len(s.byType))
	for t := range s.byType {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasType reports whether any triple carries the given relationship type.
func (s *Schema) HasType(relType string) bool {
	_, ok := s.byType[relType]
	return ok
}

// TriplesForType returns the triples carrying the given relationship type,
// with "" as a wildcard for every triple. The returned slice is shared;
// treat it as read-only.
func (s *Schema) TriplesForType(relType string) []Triple {
	if relType == "" {
		return s.triples
	}
	return s.byType[relType]
}

// Allows reports whether some triple admits (source)-[:relType]->(target).
// An empty source, type, or target is a wildcard for that position.
func (s *Schema) Allows(source, relType, target string) bool {
	for _, t := range s.TriplesForType(relType) {
		if matchLabel(source, t.Source) && matchLabel(target, t.Target) {
			return true
		}
	}
	return false
}

// Matching returns every triple admitting (source)-[:relType]->(target),
// with empty strings as wildcards.
func (s *Schema) Matching(source, relType, target string) []Triple {
	var out []Triple
	for _, t := range s.TriplesForType(relType) {
		if matchLabel(source, t.Source) && matchLabel(target, t.Target) {
			out = append(out, t)
		}
	}
	return out
}

func matchLabel(query, declared string) bool {
	return query == "" || query == declared
}

// String renders the schema in the canonical text form.
func (s *Schema) String() string {
	parts := make([]string, len(s.triples))
	for i, t := range s.triples {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
