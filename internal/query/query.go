// Package query composes filter, aggregate and rank into the four named
// queries the explorer offers. Every function here is a pure function of
// the store and its parameters.
package query

import (
	"errors"
	"fmt"

	"explorer/internal/engine"
	"explorer/internal/models"
)

// ID names one of the four queries.
type ID string

const (
	DensestCity   ID = "densest-city"
	BrandByRegion ID = "brand-by-region"
	Scatter       ID = "scatter"
	MarketShare   ID = "market-share"
)

// IDs lists the queries in menu order.
var IDs = []ID{DensestCity, BrandByRegion, Scatter, MarketShare}

// TopN is the cutoff used by the ranking queries that collapse a tail.
const TopN = 10

var (
	ErrUnknownQuery  = errors.New("unknown query")
	ErrInvalidParams = errors.New("invalid query parameters")
)

// Params carries the caller's selections. Empty or "All" means no filter.
type Params struct {
	Country  string
	Province string
	Name     string
}

func (p Params) filters() map[string]string {
	out := make(map[string]string)
	for k, v := range map[string]string{"country": p.Country, "province": p.Province, "name": p.Name} {
		if v != "" && v != engine.All {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (p Params) regionSpec() engine.FilterSpec {
	return engine.FilterSpec{}.
		Where(engine.FieldCountry, p.Country).
		Where(engine.FieldProvince, p.Province)
}

// ParseID validates a query identifier.
func ParseID(s string) (ID, error) {
	for _, id := range IDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuery, s)
}

// Run dispatches to the named query.
func Run(store *engine.RecordStore, id ID, p Params) (*models.QueryResult, error) {
	switch id {
	case DensestCity:
		return RunDensestCity(store, p)
	case BrandByRegion:
		return RunBrandByRegion(store, p)
	case Scatter:
		return RunScatter(store, p), nil
	case MarketShare:
		return RunMarketShare(store)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, id)
}

// RunDensestCity ranks cities by number of locations within the selected
// country and province. The headline is the single densest city.
func RunDensestCity(store *engine.RecordStore, p Params) (*models.QueryResult, error) {
	view := engine.Filter(store.All(), p.regionSpec())

	agg, err := engine.Aggregate(view, engine.FieldCity, engine.FieldLatitude)
	if err != nil {
		return nil, err
	}

	ranking := engine.Rank(agg.Counts, engine.RankOptions{TopN: TopN})
	result := &models.QueryResult{
		Query:   string(DensestCity),
		Outcome: models.OutcomeOK,
		Filters: Params{Country: p.Country, Province: p.Province}.filters(),
		Ranking: &ranking,
		Stats:   agg.Stats,
	}
	top, ok := ranking.Top()
	if !ok {
		result.Outcome = models.OutcomeEmpty
		return result, nil
	}
	result.Headline = &top
	return result, nil
}

// RunBrandByRegion counts the locations of one brand per province. The
// brand is matched as a case-insensitive substring of the name. An optional
// province narrows the matched rows afterwards.
func RunBrandByRegion(store *engine.RecordStore, p Params) (*models.QueryResult, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidParams)
	}

	view := engine.Filter(store.All(), engine.FilterSpec{}.Where(engine.FieldCountry, p.Country))
	view = engine.NameContains(view, p.Name)

	result := &models.QueryResult{
		Query:   string(BrandByRegion),
		Outcome: models.OutcomeOK,
		Filters: p.filters(),
	}
	if view.Len() == 0 {
		result.Outcome = models.OutcomeNotFound
		return result, nil
	}

	view = engine.Filter(view, engine.FilterSpec{}.Where(engine.FieldProvince, p.Province))
	agg, err := engine.Aggregate(view, engine.FieldProvince, engine.FieldNone)
	if err != nil {
		return nil, err
	}

	ranking := engine.Rank(agg.Counts, engine.RankOptions{})
	result.Ranking = &ranking
	if ranking.IsEmpty() {
		result.Outcome = models.OutcomeEmpty
	}
	return result, nil
}

// RunScatter returns the coordinates of every location in the selection.
func RunScatter(store *engine.RecordStore, p Params) *models.QueryResult {
	view := engine.Filter(store.All(), p.regionSpec())

	result := &models.QueryResult{
		Query:   string(Scatter),
		Outcome: models.OutcomeOK,
		Filters: Params{Country: p.Country, Province: p.Province}.filters(),
		Points:  view.Points(),
	}
	if len(result.Points) == 0 {
		result.Outcome = models.OutcomeEmpty
	}
	return result
}

// RunMarketShare ranks brands by their share of all locations, keeping the
// top ten and collapsing the rest into Others.
func RunMarketShare(store *engine.RecordStore) (*models.QueryResult, error) {
	agg, err := engine.Aggregate(store.All(), engine.FieldName, engine.FieldNone)
	if err != nil {
		return nil, err
	}

	ranking := engine.Rank(agg.Counts, engine.RankOptions{TopN: TopN, Percent: true})
	result := &models.QueryResult{
		Query:   string(MarketShare),
		Outcome: models.OutcomeOK,
		Ranking: &ranking,
	}
	if ranking.IsEmpty() {
		result.Outcome = models.OutcomeEmpty
	}
	return result, nil
}

// Options lists the selectable countries and provinces, each led by "All".
func Options(store *engine.RecordStore) models.FilterOptions {
	return models.FilterOptions{
		Countries: append([]string{engine.All}, store.Values(engine.FieldCountry)...),
		Provinces: append([]string{engine.All}, store.Values(engine.FieldProvince)...),
	}
}
