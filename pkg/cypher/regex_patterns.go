package cypher

import "regexp"

// Textual rules for recognizing Cypher patterns. Everything here is RE2
// (no lookahead, no backreferences), so a PatternConfig override can never
// change the matching engine's complexity class.

// =============================================================================
// Overridable Rules (see PatternConfig)
// =============================================================================

// DefaultNodeRule matches one node pattern such as (p:Person {name: 'x'}).
//
// Capture groups:
//   - var: the variable name, possibly empty
//   - labels: the raw label segment including colons and backticks
//   - props: the property block, when present
const DefaultNodeRule = `(?s)\(\s*` +
	`(?P<var>[a-zA-Z0-9_]*)` +
	"(?P<labels>[:!a-zA-Z0-9_`]*)" +
	`\s*(?P<props>\{.*?\})?` +
	`\s*\)`

// DefaultRelationshipRule matches the arrow segment between two adjacent node
// patterns, e.g. -[r:KNOWS*1..2 {since: 2020}]->. It is anchored to the whole
// inter-node text at compile time, so stray hyphens in expressions never read
// as arrows.
//
// Capture groups:
//   - arrow: the full arrow without surrounding whitespace
//   - left, right: the arrowhead markers, absent on an undirected arrow
//   - var: the relationship variable, possibly empty
//   - types: the raw type segment including colons, pipes, and backticks
//   - hops: the variable-length block (*, *2, *1..3), when present
//   - props: the property block, when present
const DefaultRelationshipRule = `(?s)(?P<arrow>` +
	`(?P<left><)?-\s*` +
	`(?:\[\s*` +
	`(?P<var>[a-zA-Z0-9_]*)` +
	"(?P<types>[:!a-zA-Z0-9_|`]*)" +
	`\s*(?P<hops>\*[0-9.]*)?` +
	`\s*(?P<props>\{.*?\})?` +
	`\s*\])?` +
	`\s*-(?P<right>>)?` +
	`)`

// anchorRelationshipRule pins a relationship rule to the entire text between
// two node patterns, tolerating surrounding whitespace.
func anchorRelationshipRule(rule string) string {
	return `\A\s*(?:` + rule + `)\s*\z`
}

// =============================================================================
// Compiled Defaults
// =============================================================================

var (
	defaultNodePattern         = regexp.MustCompile(DefaultNodeRule)
	defaultRelationshipPattern = regexp.MustCompile(anchorRelationshipRule(DefaultRelationshipRule))
)
