package cypher

import (
	"fmt"
	"strings"
)

// Span is a half-open [Start, End) byte range in the query text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// text returns the bytes the span covers.
func (s Span) text(query string) string { return query[s.Start:s.End] }

// NodePattern is one parenthesized node in the query text.
type NodePattern struct {
	Span     Span
	Variable string

	// Labels holds the node's labels with backticks removed. Only the first
	// one participates in direction decisions, matching how endpoint labels
	// are declared in the schema.
	Labels []string
}

// Label returns the label used for direction checks, or "" for a bare node.
func (n *NodePattern) Label() string {
	if len(n.Labels) == 0 {
		return ""
	}
	return n.Labels[0]
}

// RelationshipPattern is one arrow segment between two adjacent nodes.
type RelationshipPattern struct {
	Span      Span // the arrow, without surrounding whitespace
	Left      *NodePattern
	Right     *NodePattern
	Variable  string
	Types     []string // alternative types; empty means any type
	Negated   bool     // true for [:!TYPE] exclusion lists
	Direction Direction
	VarLength bool

	// leftMark and rightMark locate the arrowhead characters. When a mark is
	// absent its span is empty and sits where the mark would be inserted.
	leftMark  Span
	rightMark Span
}

// extractPatterns finds every node pattern and every relationship between
// adjacent nodes. It works on a masked copy of the query so patterns inside
// string literals and comments are invisible, then classifies each gap
// between consecutive nodes: a gap that fully matches the relationship rule
// is an arrow, anything else is unrelated text. Consecutive-gap scanning is
// what lets chained patterns share their middle nodes and lets patterns
// inside comprehensions be found without parsing the comprehension.
func extractPatterns(query string, cfg *compiledConfig) ([]*NodePattern, []*RelationshipPattern, error) {
	shadow := maskText(query)

	matches := cfg.node.FindAllStringSubmatchIndex(shadow, -1)
	nodes := make([]*NodePattern, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, newNodePattern(query, m, cfg))
	}

	var rels []*RelationshipPattern
	for i := 0; i+1 < len(nodes); i++ {
		rel, err := classifyGap(query, shadow, nodes[i], nodes[i+1], cfg)
		if err != nil {
			return nil, nil, err
		}
		if rel != nil {
			rels = append(rels, rel)
		}
	}
	return nodes, rels, nil
}

func newNodePattern(query string, m []int, cfg *compiledConfig) *NodePattern {
	n := &NodePattern{Span: Span{m[0], m[1]}}
	if sp, ok := groupSpan(m, cfg.nodeVar, 0); ok {
		n.Variable = sp.text(query)
	}
	if sp, ok := groupSpan(m, cfg.nodeLabels, 0); ok {
		n.Labels = parseNodeLabels(sp.text(query))
	}
	return n
}

// classifyGap decides whether the text between two adjacent nodes is a
// relationship arrow. Returns nil when it is not; errors when it is an arrow
// that points both ways.
func classifyGap(query, shadow string, left, right *NodePattern, cfg *compiledConfig) (*RelationshipPattern, error) {
	base := left.Span.End
	m := cfg.rel.FindStringSubmatchIndex(shadow[base:right.Span.Start])
	if m == nil {
		return nil, nil
	}

	arrow, ok := groupSpan(m, cfg.relArrow, base)
	if !ok {
		return nil, nil
	}

	// A bracketless arrow is only recognized when its dashes are contiguous:
	// "- -" between two value expressions is subtraction, not a pattern.
	if _, bracketed := groupSpan(m, cfg.relVar, base); !bracketed {
		if strings.ContainsAny(arrow.text(query), " \t\r\n") {
			return nil, nil
		}
	}

	rel := &RelationshipPattern{
		Span:  arrow,
		Left:  left,
		Right: right,
	}

	leftMark, hasLeft := groupSpan(m, cfg.relLeft, base)
	rightMark, hasRight := groupSpan(m, cfg.relRight, base)
	switch {
	case hasLeft && hasRight:
		return nil, fmt.Errorf("%w: %q points both ways", ErrPatternMatch, arrow.text(query))
	case hasLeft:
		rel.Direction = DirectionIncoming
		rel.leftMark = leftMark
		rel.rightMark = Span{arrow.End, arrow.End}
	case hasRight:
		rel.Direction = DirectionOutgoing
		rel.leftMark = Span{arrow.Start, arrow.Start}
		rel.rightMark = rightMark
	default:
		rel.Direction = DirectionBoth
		rel.leftMark = Span{arrow.Start, arrow.Start}
		rel.rightMark = Span{arrow.End, arrow.End}
	}

	if sp, ok := groupSpan(m, cfg.relVar, base); ok {
		rel.Variable = sp.text(query)
	}
	if sp, ok := groupSpan(m, cfg.relTypes, base); ok {
		rel.Types, rel.Negated = parseRelTypes(sp.text(query), cfg.typeSep)
	}
	if sp, ok := groupSpan(m, cfg.relHops, base); ok {
		rel.VarLength = isVarLength(sp.text(query))
	}
	return rel, nil
}

// groupSpan extracts capture group idx from a FindSubmatchIndex result,
// shifted by base. ok is false when the group did not participate.
func groupSpan(m []int, idx, base int) (Span, bool) {
	if idx < 0 || 2*idx+1 >= len(m) || m[2*idx] < 0 {
		return Span{}, false
	}
	return Span{base + m[2*idx], base + m[2*idx+1]}, true
}

// parseNodeLabels splits a raw label segment like ":Person:`Actor`" into
// clean label names.
func parseNodeLabels(raw string) []string {
	raw = strings.ReplaceAll(raw, "`", "")
	var labels []string
	for _, l := range strings.Split(raw, ":") {
		if l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// parseRelTypes splits a raw type segment like ":KNOWS|LIKES" or ":!OWNS"
// into clean names. A leading "!" marks the list as an exclusion: the
// relationship may be anything except the named types.
func parseRelTypes(raw, sep string) (types []string, negated bool) {
	raw = strings.TrimLeft(strings.TrimSpace(raw), ":")
	if raw == "" {
		return nil, false
	}
	negated = strings.HasPrefix(raw, "!")
	for _, alt := range strings.Split(raw, sep) {
		alt = stripTypeRunes(alt)
		if negated {
			alt = strings.TrimPrefix(alt, "!")
		}
		if alt != "" {
			types = append(types, alt)
		}
	}
	return types, negated
}

// stripTypeRunes removes whitespace, backticks, and colons anywhere in a type
// name, mirroring how schema fields are normalized.
func stripTypeRunes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '`', ':':
			return -1
		}
		return r
	}, s)
}

// isVarLength reports whether a hops block means variable length: a bare "*"
// or a "*m..n" range. An exact count like "*2" pins the hop count and is not
// variable length.
func isVarLength(hops string) bool {
	return hops == "*" || strings.Contains(hops, "..")
}

// reverseEdits flips the arrow: the existing arrowhead disappears and the
// opposite one is written at the other end.
func (r *RelationshipPattern) reverseEdits(cfg *compiledConfig) []edit {
	switch r.Direction {
	case DirectionOutgoing:
		return []edit{{r.leftMark, cfg.leftArrow}, {r.rightMark, ""}}
	case DirectionIncoming:
		return []edit{{r.leftMark, ""}, {r.rightMark, cfg.rightArrow}}
	}
	return nil
}

// tightenEdits pins an undirected arrow to one orientation by inserting the
// matching arrowhead.
func (r *RelationshipPattern) tightenEdits(to Direction, cfg *compiledConfig) []edit {
	if to == DirectionOutgoing {
		return []edit{{r.rightMark, cfg.rightArrow}}
	}
	return []edit{{r.leftMark, cfg.leftArrow}}
}
