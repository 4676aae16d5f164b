package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"explorer/internal/config"
	"explorer/internal/engine"
)

// PostgresSource reads the location table from a PostgreSQL table with
// the columns name, country, province, city, latitude and longitude.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

// OpenPostgres opens a connection pool for cfg.
func OpenPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (s *PostgresSource) query() string {
	return "SELECT name, country, province, city, latitude, longitude FROM " + pq.QuoteIdentifier(s.table)
}

func (s *PostgresSource) Fetch(ctx context.Context) ([]engine.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []engine.RawRecord
	for rows.Next() {
		var (
			name, country, province, city sql.NullString
			lat, lon                      sql.NullFloat64
		)
		if err := rows.Scan(&name, &country, &province, &city, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, engine.RawRecord{
			Name:      name.String,
			Country:   country.String,
			Province:  province.String,
			City:      city.String,
			Latitude:  nullCoordinate(lat, engine.LatitudeLimit),
			Longitude: nullCoordinate(lon, engine.LongitudeLimit),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

func (s *PostgresSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nullCoordinate(v sql.NullFloat64, limit float64) *float64 {
	if !v.Valid {
		return nil
	}
	return engine.Coordinate(v.Float64, limit)
}
