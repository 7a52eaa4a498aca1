package cypher

import (
	"fmt"

	"github.com/orneryd/cypherfix/pkg/schema"
)

// Fixer judges and corrects queries against one parsed schema. Construct it
// once and share it: a Fixer is immutable and safe for concurrent use.
type Fixer struct {
	schema *schema.Schema
	cfg    *compiledConfig
}

// NewFixer builds a Fixer from a parsed schema and an optional PatternConfig.
// nil config means the built-in Cypher rules.
func NewFixer(s *schema.Schema, cfg *PatternConfig) (*Fixer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrConfig)
	}
	cc, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Fixer{schema: s, cfg: cc}, nil
}

// FixResult is the corrected query plus everything decided on the way there.
type FixResult struct {
	// Query is the corrected text, byte-identical to the input when nothing
	// needed changing.
	Query string

	// Changed reports whether any arrow was rewritten.
	Changed bool

	// Relationships holds one Resolution per detected relationship pattern,
	// in text order.
	Relationships []Resolution
}

// Fix corrects every relationship arrow in the query, or reports why it
// cannot. All-or-nothing: one unclassifiable pattern, conflicting binding, or
// schema mismatch fails the whole query. Errors match ErrPatternMatch,
// ErrBindingConflict, or ErrSchemaMismatch.
func (f *Fixer) Fix(query string) (*FixResult, error) {
	nodes, rels, err := extractPatterns(query, f.cfg)
	if err != nil {
		return nil, err
	}
	bindings, err := resolveBindings(nodes)
	if err != nil {
		return nil, err
	}

	res := &FixResult{Query: query, Relationships: make([]Resolution, 0, len(rels))}
	var edits []edit
	for _, rel := range rels {
		r := resolveDirection(rel, bindings, f.schema, f.cfg)
		res.Relationships = append(res.Relationships, r)
		if r.Action == ActionInvalid {
			return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, describePattern(query, rel))
		}
		edits = append(edits, r.edits...)
	}
	if len(edits) > 0 {
		res.Query = applyEdits(query, edits)
		res.Changed = true
	}
	return res, nil
}

// describePattern renders a relationship with both endpoints for error text.
func describePattern(query string, rel *RelationshipPattern) string {
	return query[rel.Left.Span.Start:rel.Right.Span.End]
}

// FixDirections corrects relationship arrows in a Cypher query against a
// schema given as "(Source, TYPE, Target)" triples. It returns the corrected
// query (the unchanged query when every arrow already agrees with the
// schema), or "" when the schema text is malformed or any relationship cannot
// be made to agree.
func FixDirections(query, schemaText string) string {
	return FixDirectionsWithConfig(query, schemaText, nil)
}

// FixDirectionsWithConfig is FixDirections with custom pattern rules.
func FixDirectionsWithConfig(query, schemaText string, cfg *PatternConfig) string {
	s, err := schema.Parse(schemaText)
	if err != nil {
		return ""
	}
	f, err := NewFixer(s, cfg)
	if err != nil {
		return ""
	}
	res, err := f.Fix(query)
	if err != nil {
		return ""
	}
	return res.Query
}
