package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
)

// DefaultTable is the table holding the public lights export
const DefaultTable = "public_lights"

// PostgresSource implements domain.AssetSource over a table with the same
// columns as the CSV export. Every column is read as text and parsed the same
// way the CSV rows are.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a new PostgreSQL asset source
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{pool: pool, table: table}
}

// Name identifies the source
func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

// Fingerprint hashes the contents of the table, so inserts, deletes and
// in-place updates of any column all change it
func (s *PostgresSource) Fingerprint(ctx context.Context) (string, error) {
	var count int64
	var digest string
	if err := s.pool.QueryRow(ctx, fingerprintQuery(s.ident())).Scan(&count, &digest); err != nil {
		return "", fmt.Errorf("postgres: fingerprint %s: %w: %w", s.table, domain.ErrSourceUnavailable, err)
	}
	return fmt.Sprintf("%s|%d|%s", s.table, count, digest), nil
}

// Load reads every row of the table ordered by OBJECTID
func (s *PostgresSource) Load(ctx context.Context) ([]domain.LightAsset, domain.LoadReport, error) {
	rows, err := s.pool.Query(ctx, selectQuery(s.ident()))
	if err != nil {
		return nil, domain.LoadReport{}, fmt.Errorf("postgres: query %s: %w: %w", s.table, domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	assets, report, err := readRows(rows)
	if err != nil {
		return nil, report, fmt.Errorf("postgres: read %s: %w", s.table, err)
	}
	return assets, report, nil
}

// Health checks database connectivity
func (s *PostgresSource) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func (s *PostgresSource) ident() string {
	return pgx.Identifier(strings.Split(s.table, ".")).Sanitize()
}

// selectQuery lists the required columns in loader.RequiredColumns order
func selectQuery(table string) string {
	cols := make([]string, len(loader.RequiredColumns))
	for i, col := range loader.RequiredColumns {
		name := pgx.Identifier{strings.ToLower(col)}.Sanitize()
		cols[i] = name + "::text"
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), table, pgx.Identifier{"objectid"}.Sanitize())
}

// fingerprintQuery returns the row count and an md5 over every row's text
// form in OBJECTID order
func fingerprintQuery(table string) string {
	return fmt.Sprintf(
		`SELECT count(*), coalesce(md5(string_agg(t::text, E'\n' ORDER BY t.%s)), '') FROM %s AS t`,
		pgx.Identifier{"objectid"}.Sanitize(), table)
}

// rowScanner is the part of pgx.Rows the reader needs
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func readRows(rows rowScanner) ([]domain.LightAsset, domain.LoadReport, error) {
	parser, err := loader.NewRecordParser(loader.RequiredColumns)
	if err != nil {
		return nil, domain.LoadReport{}, err
	}

	values := make([]*string, len(loader.RequiredColumns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		for i := range values {
			values[i] = nil
		}
		if err := rows.Scan(dest...); err != nil {
			parser.Skip(err.Error())
			continue
		}

		fields := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				fields[i] = *v
			}
		}
		parser.Add(fields)
	}
	if err := rows.Err(); err != nil {
		assets, report := parser.Result()
		return assets, report, err
	}

	assets, report := parser.Result()
	return assets, report, nil
}
