package engine

import "fmt"

// Field names one column of a Record.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldCountry
	FieldProvince
	FieldCity
	FieldLatitude
	FieldLongitude
)

var fieldNames = [...]string{
	FieldNone:      "",
	FieldName:      "name",
	FieldCountry:   "country",
	FieldProvince:  "province",
	FieldCity:      "city",
	FieldLatitude:  "latitude",
	FieldLongitude: "longitude",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Categorical reports whether f can be filtered on or grouped by.
func (f Field) Categorical() bool {
	return f >= FieldName && f <= FieldCity
}

// Numeric reports whether f can be summarized.
func (f Field) Numeric() bool {
	return f == FieldLatitude || f == FieldLongitude
}

// ParseField maps a column name to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n != "" && n == name {
			return Field(i), nil
		}
	}
	return FieldNone, fmt.Errorf("%w: %q", ErrInvalidField, name)
}
