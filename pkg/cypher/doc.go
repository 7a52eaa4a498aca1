// Package cypher corrects relationship directions in Cypher query text
// against a graph schema.
//
// Queries produced by templates, LLMs, or quick hands frequently point a
// relationship the wrong way: the query names the right nodes and the right
// relationship type, but the arrow contradicts the schema. Such queries
// silently return nothing. This package repairs exactly that and nothing
// else: arrows are flipped or pinned, every other byte of the query is
// preserved, and a query that cannot be reconciled with the schema is
// rejected outright rather than half-fixed.
//
// # Example Usage
//
//	schemaText := "(Person, KNOWS, Person), (Person, WORKS_AT, Organization)"
//
//	fixed := cypher.FixDirections(
//		"MATCH (o:Organization)-[:WORKS_AT]->(p:Person) RETURN p",
//		schemaText,
//	)
//	// fixed == "MATCH (o:Organization)<-[:WORKS_AT]-(p:Person) RETURN p"
//
// For repeated use against one schema, build a Fixer once and share it:
//
//	s, err := schema.Parse(schemaText)
//	if err != nil { ... }
//	fixer, err := cypher.NewFixer(s, nil)
//	if err != nil { ... }
//
//	res, err := fixer.Fix(query)   // errors say WHY a query was rejected
//	batch := fixer.FixAll(queries) // "" entries for rejected queries
//
// # How It Works
//
// No Cypher grammar is parsed. The query first gets a masked shadow copy in
// which string literals, comments, and the parentheses of expressions inside
// property maps are blanked out byte-for-byte, so nothing inside data can
// look like a pattern. Node patterns are located on the shadow with a
// configurable rule, and the text between each pair of adjacent nodes is
// classified: if the whole gap matches the relationship rule it is an arrow,
// otherwise it is unrelated text. This finds chained patterns that share
// middle nodes and patterns nested inside comprehensions for free.
//
// Labels then propagate: a bare (p) inherits the label from wherever
// (p:Person) was declared. Each arrow is judged against the schema in both
// orientations and kept, flipped, left alone when both ways are valid, or
// declared invalid when neither is. Finally the recorded arrowhead spans are
// rewritten in place. All-or-nothing: a single invalid arrow, an arrow that
// points both ways, or a variable bound to two labels rejects the whole
// query, and the public entry points return "".
//
// # ELI12 (Explain Like I'm 12)
//
// The schema is a map of one-way streets: "people work AT organizations",
// never the other way around. A query is a set of directions somebody wrote
// from memory. This package checks every arrow in the directions against the
// map. Arrows drawn backwards get turned around, arrows on genuinely two-way
// streets stay as drawn, and if the directions mention a street that is not
// on the map at all, the whole note gets thrown away. Better no directions
// than wrong ones.
package cypher
