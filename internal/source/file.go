// Package source adapts the places the location table can live in to
// engine.Source.
package source

import (
	"context"
	"fmt"
	"os"

	"explorer/internal/engine"
)

// FileSource reads a CSV file from local disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]engine.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return engine.ParseCSV(f)
}
