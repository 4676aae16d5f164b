package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// RawRecord is a source row before cleaning. Missing coordinates are nil
// and a missing province is the empty string.
type RawRecord struct {
	Name      string
	Country   string
	Province  string
	City      string
	Latitude  *float64
	Longitude *float64
}

// Source produces raw rows from wherever the dataset lives.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// LoadAndClean fetches and cleans the dataset. Every failure is reported
// as ErrDataUnavailable.
func LoadAndClean(ctx context.Context, src Source) (*RecordStore, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return Clean(ctx, raw)
}

var requiredColumns = []Field{FieldName, FieldCountry, FieldProvince, FieldCity, FieldLatitude, FieldLongitude}

// ParseCSV reads a header-bearing table. Columns are located by header name
// (case-insensitive); the index column and any other column are ignored.
func ParseCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedInput, err)
	}

	cols := make(map[Field]int, len(requiredColumns))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if f, err := ParseField(h); err == nil {
			if _, dup := cols[f]; !dup {
				cols[f] = i
			}
		}
	}
	for _, f := range requiredColumns {
		if _, ok := cols[f]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedInput, f.String())
		}
	}

	var out []RawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		out = append(out, RawRecord{
			Name:      row[cols[FieldName]],
			Country:   row[cols[FieldCountry]],
			Province:  row[cols[FieldProvince]],
			City:      row[cols[FieldCity]],
			Latitude:  parseCoordinate(row[cols[FieldLatitude]], LatitudeLimit),
			Longitude: parseCoordinate(row[cols[FieldLongitude]], LongitudeLimit),
		})
	}
	return out, nil
}

// Absolute bounds for coordinates.
const (
	LatitudeLimit  = 90.0
	LongitudeLimit = 180.0
)

// parseCoordinate returns nil for blank or unparsable values and for
// anything Coordinate rejects.
func parseCoordinate(s string, limit float64) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return Coordinate(v, limit)
}

// Coordinate returns nil for non-finite values and values outside [-limit, limit].
func Coordinate(v, limit float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return nil
	}
	return &v
}
