package cypher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherfix/pkg/schema"
)

const workSchema = "(Person, WORKS_AT, Organization), (Person, KNOWS, Person), (Organization, LOCATED_IN, City)"

func newFixer(t *testing.T, schemaText string) *Fixer {
	t.Helper()
	s, err := schema.Parse(schemaText)
	require.NoError(t, err)
	f, err := NewFixer(s, nil)
	require.NoError(t, err)
	return f
}

func TestFixDirections_ReversesInsidePatternComprehension(t *testing.T) {
	got := FixDirections(
		"MATCH (p:Person) RETURN p, [(p)<-[:WORKS_AT]-(o:Organization) | o.name] AS employers",
		workSchema)

	assert.Equal(t,
		"MATCH (p:Person) RETURN p, [(p)-[:WORKS_AT]->(o:Organization) | o.name] AS employers",
		got)
}

func TestFixDirections_SymmetricTypeStaysAsWritten(t *testing.T) {
	const query = "MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a, b"
	assert.Equal(t, query, FixDirections(query, workSchema))
}

func TestFixDirections_UnknownTypeRejectsQuery(t *testing.T) {
	got := FixDirections("MATCH (a:Person)-[:LIVES_IN]->(c:City) RETURN a", workSchema)
	assert.Empty(t, got)
}

func TestFixDirections_BindingCarriesAcrossClauses(t *testing.T) {
	const query = "MATCH (p:Person) WITH p MATCH (p)-[:WORKS_AT]->(o:Organization) RETURN o"
	assert.Equal(t, query, FixDirections(query, workSchema))
}

func TestFixDirections_ConflictingBindingRejectsQuery(t *testing.T) {
	got := FixDirections("MATCH (a:Person)-[:KNOWS]->(a:City) RETURN a", workSchema)
	assert.Empty(t, got)
}

func TestFixDirections_RewritesEveryWrongArrow(t *testing.T) {
	got := FixDirections(
		"MATCH (o:Organization)-[:WORKS_AT]->(p:Person), (c:City)-[:LOCATED_IN]->(o) RETURN p",
		workSchema)

	assert.Equal(t,
		"MATCH (o:Organization)<-[:WORKS_AT]-(p:Person), (c:City)<-[:LOCATED_IN]-(o) RETURN p",
		got)
}

func TestFixDirections_TightensUndirected(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		got := FixDirections("MATCH (p:Person)-[:WORKS_AT]-(o:Organization) RETURN p", workSchema)
		assert.Equal(t, "MATCH (p:Person)-[:WORKS_AT]->(o:Organization) RETURN p", got)
	})

	t.Run("backward", func(t *testing.T) {
		got := FixDirections("MATCH (o:Organization)-[:WORKS_AT]-(p:Person) RETURN p", workSchema)
		assert.Equal(t, "MATCH (o:Organization)<-[:WORKS_AT]-(p:Person) RETURN p", got)
	})
}

func TestFixDirections_OneBadPatternFailsTheWholeQuery(t *testing.T) {
	got := FixDirections(
		"MATCH (p:Person)-[:KNOWS]->(q:Person) MATCH (p)-[:LIVES_IN]->(c:City) RETURN c",
		workSchema)
	assert.Empty(t, got)
}

func TestFixDirections_UnlabeledEndpointsUnknownType(t *testing.T) {
	// No labels to contradict the arrow, but the type is not in the schema at
	// all; the query is rejected rather than waved through.
	got := FixDirections("MATCH (a)-[:MYSTERY]->(b) RETURN a", workSchema)
	assert.Empty(t, got)
}

func TestFixDirections_DoubleArrowRejectsQuery(t *testing.T) {
	got := FixDirections("MATCH (a:Person)<-[:KNOWS]->(b:Person) RETURN a", workSchema)
	assert.Empty(t, got)
}

func TestFixDirections_MalformedSchema(t *testing.T) {
	const query = "MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a"
	assert.Empty(t, FixDirections(query, "Person KNOWS Person"))
	assert.Empty(t, FixDirections(query, ""))
}

func TestFixDirections_NoPatternsPassesThrough(t *testing.T) {
	const query = "RETURN 1 + 2 AS sum"
	assert.Equal(t, query, FixDirections(query, workSchema))
}

func TestFixDirections_PreservesSurroundingText(t *testing.T) {
	// Odd spacing, comments and literals outside the arrow spans come back
	// byte for byte.
	const query = "MATCH (p:Person)  -[:WORKS_AT]->  (o:Organization) // employer\nRETURN p, 'a-->b'"
	assert.Equal(t, query, FixDirections(query, workSchema))
}

func TestFixDirections_ReversesArrowWithFunctionCallProperties(t *testing.T) {
	got := FixDirections(
		"MATCH (o:Organization)-[r:WORKS_AT {via: point({x: 1})}]->(p:Person) RETURN p",
		workSchema)

	assert.Equal(t,
		"MATCH (o:Organization)<-[r:WORKS_AT {via: point({x: 1})}]-(p:Person) RETURN p",
		got)
}

func TestFixDirections_SeparatedDashesPassThrough(t *testing.T) {
	const query = "MATCH (a:Person), (o:Organization) RETURN (a) - - (o)"
	assert.Equal(t, query, FixDirections(query, workSchema))
}

func TestFixDirections_Idempotent(t *testing.T) {
	queries := []string{
		"MATCH (p:Person) RETURN p, [(p)<-[:WORKS_AT]-(o:Organization) | o.name] AS employers",
		"MATCH (o:Organization)-[:WORKS_AT]->(p:Person), (c:City)-[:LOCATED_IN]->(o) RETURN p",
		"MATCH (p:Person)-[:WORKS_AT]-(o:Organization) RETURN p",
	}
	for _, q := range queries {
		first := FixDirections(q, workSchema)
		require.NotEmpty(t, first)
		assert.Equal(t, first, FixDirections(first, workSchema), "query: %s", q)
	}
}

func TestFixerFix_ReportsResolutions(t *testing.T) {
	f := newFixer(t, workSchema)

	res, err := f.Fix("MATCH (a:Person)-[:KNOWS]->(b:Person)-[:WORKS_AT]->(o:Organization) RETURN o")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	require.Len(t, res.Relationships, 2)
	assert.Equal(t, ActionAmbiguous, res.Relationships[0].Action)
	assert.Equal(t, ActionKeep, res.Relationships[1].Action)
}

func TestFixerFix_ChangedFlag(t *testing.T) {
	f := newFixer(t, workSchema)

	res, err := f.Fix("MATCH (o:Organization)-[:WORKS_AT]->(p:Person) RETURN p")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "MATCH (o:Organization)<-[:WORKS_AT]-(p:Person) RETURN p", res.Query)
}

func TestFixerFix_ErrorKinds(t *testing.T) {
	f := newFixer(t, workSchema)

	t.Run("pattern", func(t *testing.T) {
		_, err := f.Fix("MATCH (a:Person)<-[:KNOWS]->(b:Person) RETURN a")
		assert.ErrorIs(t, err, ErrPatternMatch)
	})

	t.Run("binding", func(t *testing.T) {
		_, err := f.Fix("MATCH (a:Person)-[:KNOWS]->(a:City) RETURN a")
		assert.ErrorIs(t, err, ErrBindingConflict)
	})

	t.Run("schema", func(t *testing.T) {
		_, err := f.Fix("MATCH (a:Person)-[:LIVES_IN]->(c:City) RETURN a")
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), "(a:Person)-[:LIVES_IN]->(c:City)")
	})
}

func TestNewFixer_NilSchema(t *testing.T) {
	_, err := NewFixer(nil, nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFixDirectionsWithConfig_CustomTypeSeparator(t *testing.T) {
	// Swap the alternation character from | to &, in both the rule and the
	// separator the parser splits on.
	cfg := &PatternConfig{
		RelationshipRule: strings.Replace(DefaultRelationshipRule,
			"[:!a-zA-Z0-9_|`]*", "[:!a-zA-Z0-9_&`]*", 1),
		TypeSeparator: "&",
	}

	got := FixDirectionsWithConfig(
		"MATCH (o:Organization)-[:KNOWS&WORKS_AT]->(p:Person) RETURN p",
		workSchema, cfg)

	assert.Equal(t, "MATCH (o:Organization)<-[:KNOWS&WORKS_AT]-(p:Person) RETURN p", got)
}
