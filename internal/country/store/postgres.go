package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"countryref/internal/country/models"
)

// Schema creates the version table and its two secondary indexes.
// The primary key is the version identity; a second write with the same
// (alpha2_code, create_date) replaces the first.
const Schema = `
CREATE TABLE IF NOT EXISTS country_versions (
	alpha2_code  CHAR(2)     NOT NULL,
	create_date  TIMESTAMPTZ NOT NULL,
	name         TEXT        NOT NULL,
	alpha3_code  CHAR(3)     NOT NULL,
	numeric_code CHAR(3)     NOT NULL,
	expiry_date  TIMESTAMPTZ NULL,
	is_deleted   BOOLEAN     NOT NULL DEFAULT FALSE,
	PRIMARY KEY (alpha2_code, create_date)
);
CREATE INDEX IF NOT EXISTS country_versions_alpha3_idx
	ON country_versions (alpha3_code, create_date DESC);
CREATE INDEX IF NOT EXISTS country_versions_numeric_idx
	ON country_versions (numeric_code, create_date DESC);
`

const (
	versionColumns = `name, alpha2_code, alpha3_code, numeric_code, create_date, expiry_date, is_deleted`
	// newestFirst mirrors models.Country.Supersedes so SQL and Go agree on ties.
	// alpha2_code only matters for index lookups, where two chains can share
	// a code and a create date; the larger alpha2 wins as on every backend.
	newestFirst = `ORDER BY create_date DESC, alpha2_code DESC, is_deleted DESC, alpha3_code DESC, numeric_code DESC, name DESC`
)

// PostgresStore persists versions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed version store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies Schema. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return unavailable("migrate country_versions", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, c models.Country) (models.Country, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO country_versions (`+versionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (alpha2_code, create_date) DO UPDATE SET
			name = EXCLUDED.name,
			alpha3_code = EXCLUDED.alpha3_code,
			numeric_code = EXCLUDED.numeric_code,
			expiry_date = EXCLUDED.expiry_date,
			is_deleted = EXCLUDED.is_deleted`,
		c.Name, c.Alpha2, c.Alpha3, c.Numeric, c.CreatedAt, nullTime(c.ExpiresAt), c.Deleted,
	)
	if err != nil {
		return models.Country{}, unavailable("append version", err)
	}
	return c.Clone(), nil
}

func (s *PostgresStore) LatestByAlpha2(ctx context.Context, alpha2 string) (models.Country, bool, error) {
	return s.latestWhere(ctx, "find latest by alpha2", "alpha2_code", alpha2)
}

func (s *PostgresStore) LatestByAlpha3(ctx context.Context, alpha3 string) (models.Country, bool, error) {
	return s.latestWhere(ctx, "find latest by alpha3", "alpha3_code", alpha3)
}

func (s *PostgresStore) LatestByNumeric(ctx context.Context, numeric string) (models.Country, bool, error) {
	return s.latestWhere(ctx, "find latest by numeric", "numeric_code", numeric)
}

// ListLatest reads the full version table and reduces it in Go, so every
// backend shares one listing algorithm.
func (s *PostgresStore) ListLatest(ctx context.Context, limit, offset int) ([]models.Country, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+versionColumns+` FROM country_versions`)
	if err != nil {
		return nil, unavailable("list latest", err)
	}
	all, err := scanVersions(rows)
	if err != nil {
		return nil, unavailable("list latest", err)
	}
	return paginate(reduceLatest(all), limit, offset), nil
}

func (s *PostgresStore) History(ctx context.Context, alpha2 string) ([]models.Country, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+versionColumns+` FROM country_versions WHERE alpha2_code = $1 `+newestFirst, alpha2)
	if err != nil {
		return nil, unavailable("history", err)
	}
	out, err := scanVersions(rows)
	if err != nil {
		return nil, unavailable("history", err)
	}
	return out, nil
}

// latestWhere reads the newest version matching column = code and applies
// the currency filter to it. column is always a package constant.
func (s *PostgresStore) latestWhere(ctx context.Context, op, column, code string) (models.Country, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM country_versions WHERE `+column+` = $1 `+newestFirst+` LIMIT 1`, code)
	head, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Country{}, false, nil
	}
	if err != nil {
		return models.Country{}, false, unavailable(op, err)
	}
	c, ok := headActive([]models.Country{head})
	return c, ok, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (models.Country, error) {
	var (
		name, alpha2, alpha3, numeric string
		created                       sql.NullTime
		expires                       sql.NullTime
		deleted                       bool
	)
	if err := row.Scan(&name, &alpha2, &alpha3, &numeric, &created, &expires, &deleted); err != nil {
		return models.Country{}, err
	}
	c, err := models.NewCountry(name, alpha2, alpha3, numeric, created.Time, timePtr(expires), deleted)
	if err != nil {
		return models.Country{}, fmt.Errorf("decode version row: %w", err)
	}
	return c, nil
}

func scanVersions(rows *sql.Rows) ([]models.Country, error) {
	defer rows.Close()
	out := []models.Country{}
	for rows.Next() {
		c, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
