package engine

import "strings"

// All is the sentinel filter value meaning "no constraint".
const All = "All"

// Constraint keeps rows whose Field equals Value exactly.
type Constraint struct {
	Field Field
	Value string
}

func (c Constraint) active() bool {
	return c.Value != "" && c.Value != All
}

// FilterSpec is an ordered set of equality constraints, combined with AND.
type FilterSpec []Constraint

// Where returns a copy of s with one more constraint.
func (s FilterSpec) Where(f Field, value string) FilterSpec {
	out := make(FilterSpec, len(s), len(s)+1)
	copy(out, s)
	return append(out, Constraint{Field: f, Value: value})
}

// Filter returns the rows of v that satisfy every active constraint.
// Empty and All values are ignored. A constraint on a non-categorical
// field matches nothing.
func Filter(v View, spec FilterSpec) View {
	type matcher struct {
		ids  []int32
		want int32
	}

	var matchers []matcher
	for _, c := range spec {
		if !c.active() {
			continue
		}
		col := v.store.categorical(c.Field)
		if col == nil {
			return View{store: v.store}
		}
		want, ok := col.index[c.Value]
		if !ok {
			return View{store: v.store}
		}
		matchers = append(matchers, matcher{ids: col.ids, want: want})
	}
	if len(matchers) == 0 {
		return View{store: v.store, rows: v.rows}
	}

	rows := make([]int32, 0, len(v.rows))
	for _, r := range v.rows {
		pass := true
		for _, m := range matchers {
			if m.ids[r] != m.want {
				pass = false
				break
			}
		}
		if pass {
			rows = append(rows, r)
		}
	}
	return View{store: v.store, rows: rows}
}

// NameContains keeps rows whose name contains substr, ignoring case.
// Rows with no name never match.
func NameContains(v View, substr string) View {
	col := v.store.categorical(FieldName)
	if col == nil {
		return View{store: v.store}
	}

	// Match each distinct name once instead of once per row.
	needle := strings.ToLower(substr)
	match := make([]bool, len(col.values))
	for id, name := range col.values {
		match[id] = name != "" && strings.Contains(strings.ToLower(name), needle)
	}

	rows := make([]int32, 0)
	for _, r := range v.rows {
		if match[col.ids[r]] {
			rows = append(rows, r)
		}
	}
	return View{store: v.store, rows: rows}
}
