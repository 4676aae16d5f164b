package models

// Record is one cleaned point-of-sale location.
type Record struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Province  string  `json:"province"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GroupAggregate is the count for one value of the grouping field.
// Share is only set when the ranking was computed in percent-of-total mode.
type GroupAggregate struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	Share     float64 `json:"share,omitempty"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// OthersKey labels the entry that collapses every group past the top-N cutoff.
const OthersKey = "Others"

// RankedResult holds groups ordered by count (desc) then key (asc).
// Others is nil unless groups were cut off.
type RankedResult struct {
	Entries []GroupAggregate `json:"entries"`
	Others  *GroupAggregate  `json:"others,omitempty"`
	Total   int              `json:"total"`
	Percent bool             `json:"percent,omitempty"`
}

// Rows returns the kept entries followed by Others, if any.
func (r RankedResult) Rows() []GroupAggregate {
	rows := make([]GroupAggregate, 0, len(r.Entries)+1)
	rows = append(rows, r.Entries...)
	if r.Others != nil {
		rows = append(rows, *r.Others)
	}
	return rows
}

// Top returns the highest ranked entry.
func (r RankedResult) Top() (GroupAggregate, bool) {
	if len(r.Entries) == 0 {
		return GroupAggregate{}, false
	}
	return r.Entries[0], true
}

func (r RankedResult) IsEmpty() bool {
	return len(r.Entries) == 0 && r.Others == nil
}

// Summary is a mean/median over one numeric field of a whole view.
type Summary struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Outcome tells the renderer which terminal state a query reached.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeNotFound Outcome = "not_found"
	OutcomeEmpty    Outcome = "empty"
)

// QueryResult is what every named query hands to a renderer.
// Ranking queries fill Ranking; the scatter query fills Points.
type QueryResult struct {
	Query    string            `json:"query"`
	Outcome  Outcome           `json:"outcome"`
	Filters  map[string]string `json:"filters,omitempty"`
	Headline *GroupAggregate   `json:"headline,omitempty"`
	Ranking  *RankedResult     `json:"ranking,omitempty"`
	Points   []GeoPoint        `json:"points,omitempty"`
	Stats    *Summary          `json:"stats,omitempty"`
}

// FilterOptions lists the values a caller can pick for each filter,
// with the "All" sentinel first.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Provinces []string `json:"provinces"`
}
