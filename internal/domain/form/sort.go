package form

import "sort"

// Sort returns a copy of t with groupings ordered by Order ascending and the
// fields of each grouping ordered by Order ascending. Ties keep their input
// position, so applying Sort twice yields the same result.
func Sort(t Template) Template {
	out := t
	out.Groupings = make([]Grouping, len(t.Groupings))
	copy(out.Groupings, t.Groupings)
	sort.SliceStable(out.Groupings, func(i, j int) bool {
		return out.Groupings[i].Order < out.Groupings[j].Order
	})

	for i := range out.Groupings {
		fields := make([]Field, len(out.Groupings[i].Fields))
		copy(fields, out.Groupings[i].Fields)
		sort.SliceStable(fields, func(a, b int) bool {
			return fields[a].Order < fields[b].Order
		})
		out.Groupings[i].Fields = fields
	}
	return out
}
