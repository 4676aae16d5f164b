// Package export writes views of the record store as Arrow IPC streams.
package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"explorer/internal/engine"
)

// ContentType is the media type of an Arrow IPC stream.
const ContentType = "application/vnd.apache.arrow.stream"

const defaultBatchSize = 64 * 1024

// Schema is the column layout of every exported stream.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "country", Type: arrow.BinaryTypes.String},
	{Name: "province", Type: arrow.BinaryTypes.String},
	{Name: "city", Type: arrow.BinaryTypes.String},
	{Name: "latitude", Type: arrow.PrimitiveTypes.Float64},
	{Name: "longitude", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteArrow streams every row of v to w in record batches. An empty
// view still produces a valid stream carrying only the schema.
func WriteArrow(w io.Writer, v engine.View) error {
	return writeBatches(w, v, defaultBatchSize)
}

func writeBatches(w io.Writer, v engine.View, batchSize int) error {
	mem := memory.NewGoAllocator()
	writer := ipc.NewWriter(w, ipc.WithSchema(Schema), ipc.WithAllocator(mem))

	b := array.NewRecordBuilder(mem, Schema)
	defer b.Release()

	name := b.Field(0).(*array.StringBuilder)
	country := b.Field(1).(*array.StringBuilder)
	province := b.Field(2).(*array.StringBuilder)
	city := b.Field(3).(*array.StringBuilder)
	lat := b.Field(4).(*array.Float64Builder)
	lon := b.Field(5).(*array.Float64Builder)

	flush := func() error {
		rec := b.NewRecord()
		defer rec.Release()
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("write arrow batch: %w", err)
		}
		return nil
	}

	pending := 0
	for i := 0; i < v.Len(); i++ {
		r := v.Record(i)
		name.Append(r.Name)
		country.Append(r.Country)
		province.Append(r.Province)
		city.Append(r.City)
		lat.Append(r.Latitude)
		lon.Append(r.Longitude)

		pending++
		if pending == batchSize {
			if err := flush(); err != nil {
				writer.Close()
				return err
			}
			pending = 0
		}
	}
	if pending > 0 {
		if err := flush(); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}
