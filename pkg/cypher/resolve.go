package cypher

import "github.com/orneryd/cypherfix/pkg/schema"

// Action is the outcome of judging one relationship against the schema.
type Action int

const (
	// ActionKeep confirms the written direction. An undirected pattern the
	// schema admits in exactly one orientation is also a Keep, carrying the
	// arrowhead insertion that pins it down.
	ActionKeep Action = iota

	// ActionReverse flips the arrow: only the opposite orientation is in the
	// schema.
	ActionReverse

	// ActionAmbiguous means both orientations are schema-valid, so the text
	// is left exactly as written.
	ActionAmbiguous

	// ActionInvalid means no orientation is schema-valid; the query as a
	// whole is rejected.
	ActionInvalid
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "Keep"
	case ActionReverse:
		return "Reverse"
	case ActionAmbiguous:
		return "Ambiguous"
	case ActionInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Resolution records the decision for one relationship pattern.
type Resolution struct {
	Rel    *RelationshipPattern
	Action Action

	// Matched holds the schema triples that justified the decision, oriented
	// as they appear in the schema. Empty for Invalid.
	Matched []schema.Triple

	edits []edit
}

// resolveDirection judges one relationship against the schema.
//
// Endpoint labels come from the nodes themselves or the binding table; a
// missing label is a wildcard. Validity is aggregated across every candidate
// type: the written orientation wins over a flip, a flip happens only when it
// is the single way to satisfy the schema, and a pattern no orientation can
// satisfy invalidates the query.
func resolveDirection(rel *RelationshipPattern, bindings bindingTable, s *schema.Schema, cfg *compiledConfig) Resolution {
	res := Resolution{Rel: rel}

	// Variable-length paths traverse intermediate nodes the pattern does not
	// name, so endpoint labels cannot prove the arrow wrong. Leave them be.
	if rel.VarLength {
		res.Action = ActionKeep
		return res
	}

	types, judgeable := candidateTypes(rel, s)
	if !judgeable {
		res.Action = ActionKeep
		return res
	}

	left := bindings.labelFor(rel.Left)
	right := bindings.labelFor(rel.Right)

	// ltr holds triples admitting the pattern read left to right, rtl the
	// triples admitting it read right to left.
	var ltr, rtl []schema.Triple
	for _, t := range types {
		ltr = append(ltr, s.Matching(left, t, right)...)
		rtl = append(rtl, s.Matching(right, t, left)...)
	}

	switch rel.Direction {
	case DirectionOutgoing:
		res.decideDirected(ltr, rtl, cfg)
	case DirectionIncoming:
		res.decideDirected(rtl, ltr, cfg)
	default:
		res.decideUndirected(ltr, rtl, cfg)
	}
	return res
}

// decideDirected settles a directed pattern given the triples supporting the
// written orientation and the triples supporting the opposite one.
func (r *Resolution) decideDirected(current, other []schema.Triple, cfg *compiledConfig) {
	switch {
	case len(current) > 0 && len(other) > 0:
		r.Action = ActionAmbiguous
		r.Matched = append(current, other...)
	case len(current) > 0:
		r.Action = ActionKeep
		r.Matched = current
	case len(other) > 0:
		r.Action = ActionReverse
		r.Matched = other
		r.edits = r.Rel.reverseEdits(cfg)
	default:
		r.Action = ActionInvalid
	}
}

// decideUndirected settles an undirected pattern. It stays undirected when
// both orientations are valid, gets an arrowhead when exactly one is, and
// invalidates the query when neither is.
func (r *Resolution) decideUndirected(ltr, rtl []schema.Triple, cfg *compiledConfig) {
	switch {
	case len(ltr) > 0 && len(rtl) > 0:
		r.Action = ActionAmbiguous
		r.Matched = append(ltr, rtl...)
	case len(ltr) > 0:
		r.Action = ActionKeep
		r.Matched = ltr
		r.edits = r.Rel.tightenEdits(DirectionOutgoing, cfg)
	case len(rtl) > 0:
		r.Action = ActionKeep
		r.Matched = rtl
		r.edits = r.Rel.tightenEdits(DirectionIncoming, cfg)
	default:
		r.Action = ActionInvalid
	}
}

// candidateTypes expands the pattern's type list into the concrete types to
// judge. A missing list is the wildcard type; an exclusion list becomes every
// schema type not excluded. judgeable is false when the exclusions rule out
// every type there is: nothing remains to check, so the pattern passes
// untouched.
func candidateTypes(rel *RelationshipPattern, s *schema.Schema) (types []string, judgeable bool) {
	if rel.Negated {
		excluded := make(map[string]bool, len(rel.Types))
		for _, t := range rel.Types {
			excluded[t] = true
		}
		for _, t := range s.Types() {
			if !excluded[t] {
				types = append(types, t)
			}
		}
		return types, len(types) > 0
	}
	if len(rel.Types) == 0 {
		return []string{""}, true
	}
	return rel.Types, true
}
