package engine

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"runtime"

	"explorer/internal/models"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many rows a worker normalizes between
// cancellation checks.
const ctxCheckInterval = 4096

type cleanedChunk struct {
	records []models.Record
	hashes  []uint64
}

// Clean builds a RecordStore from raw rows: rows without both coordinates
// are dropped, a missing province becomes UnknownProvince, and exact
// duplicates are removed keeping the first occurrence. Duplicates are
// detected after normalization, so Clean is idempotent.
func Clean(ctx context.Context, raw []RawRecord) (*RecordStore, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDataUnavailable)
	}

	// A. Normalize in parallel chunks
	numWorkers := min(runtime.NumCPU(), len(raw))
	chunkSize := (len(raw) + numWorkers - 1) / numWorkers
	chunks := make([]cleanedChunk, numWorkers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(raw))
		if start >= end {
			continue
		}
		g.Go(func() error {
			c := cleanedChunk{
				records: make([]models.Record, 0, end-start),
				hashes:  make([]uint64, 0, end-start),
			}
			for i := start; i < end; i++ {
				if (i-start)%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				rec, ok := normalize(raw[i])
				if !ok {
					continue
				}
				c.records = append(c.records, rec)
				c.hashes = append(c.hashes, hashRecord(rec))
			}
			chunks[w] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	// B. De-duplicate in source order
	seen := make(map[uint64][]int32)
	kept := make([]models.Record, 0, len(raw))
	for _, c := range chunks {
		for j, rec := range c.records {
			h := c.hashes[j]
			if isDuplicate(kept, seen[h], rec) {
				continue
			}
			seen[h] = append(seen[h], int32(len(kept)))
			kept = append(kept, rec)
		}
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: no rows with coordinates", ErrDataUnavailable)
	}
	return newStore(kept), nil
}

func normalize(r RawRecord) (models.Record, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return models.Record{}, false
	}
	lat, lon := *r.Latitude, *r.Longitude
	// fold -0 into 0 so equal coordinates hash equally
	if lat == 0 {
		lat = 0
	}
	if lon == 0 {
		lon = 0
	}
	province := r.Province
	if province == "" {
		province = UnknownProvince
	}
	return models.Record{
		Name:      r.Name,
		Country:   r.Country,
		Province:  province,
		City:      r.City,
		Latitude:  lat,
		Longitude: lon,
	}, true
}

var fieldSep = []byte{0}

func hashRecord(r models.Record) uint64 {
	h := xxh3.New()
	for _, s := range [...]string{r.Name, r.Country, r.Province, r.City} {
		h.WriteString(s)
		h.Write(fieldSep)
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(r.Latitude))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(r.Longitude))
	h.Write(buf[:])
	return h.Sum64()
}

func isDuplicate(kept []models.Record, candidates []int32, rec models.Record) bool {
	for _, idx := range candidates {
		if kept[idx] == rec {
			return true
		}
	}
	return false
}
