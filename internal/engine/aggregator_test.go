package engine

import (
	"errors"
	"testing"
)

func TestAggregate(t *testing.T) {
	// 1. Setup
	// Grand Rapids x2, Miami x2, Toronto x2, Detroit, Atlanta
	store := sampleStore(t)

	// 2. Run Aggregation
	agg, err := Aggregate(store.All(), FieldCity, FieldNone)
	if err != nil {
		t.Fatal(err)
	}

	// 3. Assertions
	want := map[string]int{"Grand Rapids": 2, "Miami": 2, "Toronto": 2, "Detroit": 1, "Atlanta": 1}
	if len(agg.Counts) != len(want) {
		t.Fatalf("Expected %d cities, got %d", len(want), len(agg.Counts))
	}
	for city, n := range want {
		if agg.Counts[city] != n {
			t.Errorf("%s: expected %d, got %d", city, n, agg.Counts[city])
		}
	}
	if agg.Total != store.Len() {
		t.Errorf("Expected total %d, got %d", store.Len(), agg.Total)
	}
	if agg.Stats != nil {
		t.Error("Expected no stats without a stat field")
	}
}

func TestAggregateSkipsMissingKeys(t *testing.T) {
	store := sampleStore(t)

	agg, err := Aggregate(store.All(), FieldName, FieldNone)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := agg.Counts[""]; ok {
		t.Error("Empty name should not form a group")
	}
	if agg.Total != store.Len()-1 {
		t.Errorf("Expected total %d, got %d", store.Len()-1, agg.Total)
	}
	if agg.Counts["McDonald's"] != 2 || agg.Counts["mcdonalds"] != 1 {
		t.Errorf("Names must not be normalized: %v", agg.Counts)
	}
}

func TestAggregateStats(t *testing.T) {
	store := mustClean(t,
		raw("A", "US", "TX", "Austin", 1, 0),
		raw("B", "US", "TX", "Austin", 10, 0),
		raw("C", "US", "TX", "Dallas", 2, 0),
		raw("D", "US", "OK", "Tulsa", 3, 0),
	)

	agg, err := Aggregate(store.All(), FieldCity, FieldLatitude)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Stats == nil {
		t.Fatal("Expected stats")
	}
	if agg.Stats.Mean != 4 || agg.Stats.Median != 2.5 || agg.Stats.Count != 4 {
		t.Errorf("Unexpected stats: %+v", *agg.Stats)
	}
	if agg.Stats.Field != "latitude" {
		t.Errorf("Expected field latitude, got %s", agg.Stats.Field)
	}

	// Odd count: the middle value after sorting
	tx := Filter(store.All(), FilterSpec{}.Where(FieldProvince, "TX"))
	s := Summarize(tx, FieldLatitude)
	if s == nil || s.Median != 2 {
		t.Errorf("Expected median 2, got %+v", s)
	}
}

func TestAggregateInvalidFields(t *testing.T) {
	store := sampleStore(t)

	if _, err := Aggregate(store.All(), FieldLatitude, FieldNone); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField for numeric group key, got %v", err)
	}
	if _, err := Aggregate(store.All(), FieldCity, FieldCountry); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField for categorical stat field, got %v", err)
	}
}

func TestAggregateEmptyView(t *testing.T) {
	store := sampleStore(t)
	empty := Filter(store.All(), FilterSpec{}.Where(FieldCountry, "NG"))

	agg, err := Aggregate(empty, FieldCity, FieldLatitude)
	if err != nil {
		t.Fatal(err)
	}
	if len(agg.Counts) != 0 || agg.Total != 0 || agg.Stats != nil {
		t.Errorf("Expected empty aggregation, got %+v", agg)
	}
}
