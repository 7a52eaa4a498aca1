package cypher

// Direction is the textual orientation of a relationship pattern.
type Direction string

const (
	// DirectionOutgoing reads left to right: (a)-[r]->(b).
	DirectionOutgoing Direction = "outgoing"

	// DirectionIncoming reads right to left: (a)<-[r]-(b).
	DirectionIncoming Direction = "incoming"

	// DirectionBoth is undirected: (a)-[r]-(b).
	DirectionBoth Direction = "both"
)

// Reversed returns the opposite orientation. Undirected reverses to itself.
func (d Direction) Reversed() Direction {
	switch d {
	case DirectionOutgoing:
		return DirectionIncoming
	case DirectionIncoming:
		return DirectionOutgoing
	default:
		return d
	}
}
