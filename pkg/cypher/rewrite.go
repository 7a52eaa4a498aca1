package cypher

import "sort"

// edit replaces one span of the query text.
type edit struct {
	span Span
	text string
}

// applyEdits rewrites the query by exact span surgery. Edits are applied in
// descending start order so earlier offsets stay valid; nothing outside the
// recorded spans is touched.
func applyEdits(query string, edits []edit) string {
	if len(edits) == 0 {
		return query
	}
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].span.Start > sorted[j].span.Start })

	out := query
	for _, e := range sorted {
		out = out[:e.span.Start] + e.text + out[e.span.End:]
	}
	return out
}
