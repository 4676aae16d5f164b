package engine

import (
	"context"
	"testing"
)

func coord(v float64) *float64 { return &v }

func raw(name, country, province, city string, lat, lon float64) RawRecord {
	return RawRecord{
		Name:      name,
		Country:   country,
		Province:  province,
		City:      city,
		Latitude:  coord(lat),
		Longitude: coord(lon),
	}
}

func mustClean(t *testing.T, rows ...RawRecord) *RecordStore {
	t.Helper()
	store, err := Clean(context.Background(), rows)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	return store
}

// toRaw turns a store back into raw rows so it can be cleaned again.
func toRaw(s *RecordStore) []RawRecord {
	out := make([]RawRecord, s.Len())
	for i := range out {
		r := s.Record(i)
		out[i] = raw(r.Name, r.Country, r.Province, r.City, r.Latitude, r.Longitude)
	}
	return out
}

func sampleStore(t *testing.T) *RecordStore {
	t.Helper()
	return mustClean(t,
		raw("McDonald's", "US", "MI", "Grand Rapids", 42.96, -85.66),
		raw("Taco Bell", "US", "MI", "Grand Rapids", 42.97, -85.67),
		raw("Burger King", "US", "MI", "Detroit", 42.33, -83.04),
		raw("McDonald's", "US", "FL", "Miami", 25.76, -80.19),
		raw("Checkers", "US", "FL", "Miami", 25.77, -80.2),
		raw("Checkers", "US", "GA", "Atlanta", 33.75, -84.39),
		raw("mcdonalds", "CA", "ON", "Toronto", 43.65, -79.38),
		raw("", "CA", "", "Toronto", 43.66, -79.39),
	)
}
