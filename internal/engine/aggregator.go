package engine

import (
	"fmt"
	"sort"

	"explorer/internal/models"
)

// Aggregation is the unordered result of grouping a view.
type Aggregation struct {
	GroupKey Field
	Counts   map[string]int
	Total    int
	Stats    *models.Summary
}

// Aggregate counts the rows of v per value of groupKey. Rows with an empty
// key are left out. When statField is not FieldNone, Stats carries the mean
// and median of that field over the whole view, not per group.
func Aggregate(v View, groupKey Field, statField Field) (*Aggregation, error) {
	if !groupKey.Categorical() {
		return nil, fmt.Errorf("%w: cannot group by %s", ErrInvalidField, groupKey)
	}
	if statField != FieldNone && !statField.Numeric() {
		return nil, fmt.Errorf("%w: cannot summarize %s", ErrInvalidField, statField)
	}

	agg := &Aggregation{GroupKey: groupKey, Counts: make(map[string]int)}
	if v.Len() == 0 {
		return agg, nil
	}

	// Dictionary IDs index straight into the counter array.
	col := v.store.categorical(groupKey)
	counts := make([]int, len(col.values))
	ids := col.ids
	for _, r := range v.rows {
		counts[ids[r]]++
	}

	for id, n := range counts {
		if n == 0 || col.values[id] == "" {
			continue
		}
		agg.Counts[col.values[id]] = n
		agg.Total += n
	}

	if statField != FieldNone {
		agg.Stats = Summarize(v, statField)
	}
	return agg, nil
}

// Summarize returns the mean and median of a numeric field over v,
// or nil when v is empty or f is not numeric.
func Summarize(v View, f Field) *models.Summary {
	col := v.store.numeric(f)
	if col == nil || v.Len() == 0 {
		return nil
	}

	values := make([]float64, len(v.rows))
	var sum float64
	for i, r := range v.rows {
		values[i] = col[r]
		sum += col[r]
	}
	sort.Float64s(values)

	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	return &models.Summary{
		Field:  f.String(),
		Count:  n,
		Mean:   sum / float64(n),
		Median: median,
	}
}
