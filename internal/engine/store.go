package engine

import (
	"sort"

	"explorer/internal/models"
)

// UnknownProvince replaces a missing province during cleaning.
const UnknownProvince = "Unknown"

// column is a dictionary encoded categorical column.
type column struct {
	ids    []int32
	values []string // ID -> string
	index  map[string]int32
}

func newColumn(capacity int) *column {
	return &column{
		ids:   make([]int32, 0, capacity),
		index: make(map[string]int32),
	}
}

func (c *column) append(s string) {
	id, ok := c.index[s]
	if !ok {
		id = int32(len(c.values))
		c.values = append(c.values, s)
		c.index[s] = id
	}
	c.ids = append(c.ids, id)
}

// RecordStore holds the cleaned dataset in struct-of-arrays form.
// It is built once by Clean and never modified afterwards, so it can be
// shared by any number of concurrent readers.
type RecordStore struct {
	name     *column
	country  *column
	province *column
	city     *column

	latitudes  []float64
	longitudes []float64
}

func newStore(records []models.Record) *RecordStore {
	n := len(records)
	s := &RecordStore{
		name:       newColumn(n),
		country:    newColumn(n),
		province:   newColumn(n),
		city:       newColumn(n),
		latitudes:  make([]float64, 0, n),
		longitudes: make([]float64, 0, n),
	}
	for _, r := range records {
		s.name.append(r.Name)
		s.country.append(r.Country)
		s.province.append(r.Province)
		s.city.append(r.City)
		s.latitudes = append(s.latitudes, r.Latitude)
		s.longitudes = append(s.longitudes, r.Longitude)
	}
	return s
}

func (s *RecordStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.latitudes)
}

// Record materializes row i.
func (s *RecordStore) Record(i int) models.Record {
	return models.Record{
		Name:      s.name.values[s.name.ids[i]],
		Country:   s.country.values[s.country.ids[i]],
		Province:  s.province.values[s.province.ids[i]],
		City:      s.city.values[s.city.ids[i]],
		Latitude:  s.latitudes[i],
		Longitude: s.longitudes[i],
	}
}

// All returns a view over every row.
func (s *RecordStore) All() View {
	rows := make([]int32, s.Len())
	for i := range rows {
		rows[i] = int32(i)
	}
	return View{store: s, rows: rows}
}

// Values returns the distinct non-empty values of a categorical field, sorted.
func (s *RecordStore) Values(f Field) []string {
	col := s.categorical(f)
	if col == nil {
		return nil
	}
	out := make([]string, 0, len(col.values))
	for _, v := range col.values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (s *RecordStore) categorical(f Field) *column {
	if s == nil {
		return nil
	}
	switch f {
	case FieldName:
		return s.name
	case FieldCountry:
		return s.country
	case FieldProvince:
		return s.province
	case FieldCity:
		return s.city
	}
	return nil
}

func (s *RecordStore) numeric(f Field) []float64 {
	if s == nil {
		return nil
	}
	switch f {
	case FieldLatitude:
		return s.latitudes
	case FieldLongitude:
		return s.longitudes
	}
	return nil
}

// View is a read-only subset of a RecordStore, held as row indices.
type View struct {
	store *RecordStore
	rows  []int32
}

func (v View) Len() int { return len(v.rows) }

func (v View) Record(i int) models.Record {
	return v.store.Record(int(v.rows[i]))
}

func (v View) Records() []models.Record {
	out := make([]models.Record, len(v.rows))
	for i, r := range v.rows {
		out[i] = v.store.Record(int(r))
	}
	return out
}

// Points returns the coordinates of every row in view order.
func (v View) Points() []models.GeoPoint {
	out := make([]models.GeoPoint, len(v.rows))
	for i, r := range v.rows {
		out[i] = models.GeoPoint{Latitude: v.store.latitudes[r], Longitude: v.store.longitudes[r]}
	}
	return out
}
