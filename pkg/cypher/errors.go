package cypher

import "errors"

// Sentinel errors for direction fixing. The public FixDirections entry point
// collapses every failure to an empty string; Fixer.Fix returns these wrapped
// with the offending pattern so callers can log or branch with errors.Is.
var (
	// ErrPatternMatch reports a relationship pattern whose direction cannot
	// be classified as outgoing, incoming, or undirected, e.g. "<-[r]->"
	// with both arrowheads.
	ErrPatternMatch = errors.New("cypher: unclassifiable relationship pattern")

	// ErrBindingConflict reports a variable declared with two different
	// labels in the same query, e.g. MATCH (a:Person) ... MATCH (a:City).
	ErrBindingConflict = errors.New("cypher: conflicting label bindings")

	// ErrSchemaMismatch reports a relationship that no schema triple allows
	// in either direction.
	ErrSchemaMismatch = errors.New("cypher: relationship not in schema")

	// ErrConfig reports an unusable PatternConfig: a rule that does not
	// compile or lacks a required capture group.
	ErrConfig = errors.New("cypher: invalid pattern config")
)
