package source

import (
	"context"
	"fmt"
	"io"

	"explorer/internal/config"
	"explorer/internal/engine"
)

// FromConfig builds the source selected by cfg.Kind. The returned closer
// releases any connection the source holds.
func FromConfig(ctx context.Context, cfg config.SourceConfig) (engine.Source, io.Closer, error) {
	switch cfg.Kind {
	case config.SourceFile, "":
		return NewFileSource(cfg.Path), nopCloser{}, nil
	case config.SourceS3:
		client, err := NewS3Client(ctx, cfg.S3.Region)
		if err != nil {
			return nil, nil, err
		}
		return NewS3Source(client, cfg.S3.Bucket, cfg.S3.Key), nopCloser{}, nil
	case config.SourcePostgres:
		db, err := OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		src := NewPostgresSource(db, cfg.Postgres.Table)
		return src, src, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
