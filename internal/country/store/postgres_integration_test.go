//go:build integration

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"countryref/pkg/platform/sentinel"
	"countryref/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	contractSuite
	postgres *containers.PostgresContainer
	pg       *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.pg = NewPostgres(s.postgres.DB)
	s.Require().NoError(s.pg.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "country_versions"))
	s.store = s.pg
}

func (s *PostgresStoreSuite) TestMigrateIsIdempotent() {
	s.Require().NoError(s.pg.Migrate(s.ctx))
}

func (s *PostgresStoreSuite) TestClosedPoolReportsUnavailable() {
	db, err := sql.Open("postgres", s.postgres.DSN)
	s.Require().NoError(err)
	s.Require().NoError(db.Close())

	_, err = NewPostgres(db).ListLatest(s.ctx, 10, 0)
	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrUnavailable)
}
