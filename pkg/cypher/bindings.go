package cypher

import "fmt"

// bindingTable maps query variables to the label they were declared with.
type bindingTable map[string]string

// resolveBindings walks every node pattern in the query and records the label
// of each named variable, so a later bare mention like (p) inherits the label
// from its declaration (p:Person). A variable declared with two different
// labels is a conflict: direction decisions would depend on which occurrence
// happened to be consulted, so the whole query is rejected instead.
func resolveBindings(nodes []*NodePattern) (bindingTable, error) {
	table := make(bindingTable, len(nodes))
	for _, n := range nodes {
		if n.Variable == "" {
			continue
		}
		label := n.Label()
		if label == "" {
			continue
		}
		if prev, ok := table[n.Variable]; ok && prev != label {
			return nil, fmt.Errorf("%w: %s is both %s and %s", ErrBindingConflict, n.Variable, prev, label)
		}
		table[n.Variable] = label
	}
	return table, nil
}

// labelFor resolves the label of a relationship endpoint: the node's own
// label when it has one, otherwise whatever its variable was bound to
// elsewhere, otherwise the wildcard.
func (b bindingTable) labelFor(n *NodePattern) string {
	if l := n.Label(); l != "" {
		return l
	}
	if n.Variable == "" {
		return ""
	}
	return b[n.Variable]
}
