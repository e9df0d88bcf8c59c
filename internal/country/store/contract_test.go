package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"countryref/internal/country/models"
)

// versionStore is the behaviour every backend must share.
type versionStore interface {
	Append(ctx context.Context, c models.Country) (models.Country, error)
	LatestByAlpha2(ctx context.Context, alpha2 string) (models.Country, bool, error)
	LatestByAlpha3(ctx context.Context, alpha3 string) (models.Country, bool, error)
	LatestByNumeric(ctx context.Context, numeric string) (models.Country, bool, error)
	ListLatest(ctx context.Context, limit, offset int) ([]models.Country, error)
	History(ctx context.Context, alpha2 string) ([]models.Country, error)
}

var (
	_ versionStore = (*InMemory)(nil)
	_ versionStore = (*PebbleStore)(nil)
	_ versionStore = (*PostgresStore)(nil)
	_ versionStore = (*RedisStore)(nil)
)

var baseTime = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

// contractSuite is embedded by each backend suite. The embedding suite sets
// store in SetupTest with a fresh, empty backend.
type contractSuite struct {
	suite.Suite
	store versionStore
	ctx   context.Context
}

func (s *contractSuite) version(name, a2, a3, num string, at time.Duration, deleted bool) models.Country {
	c, err := models.NewCountry(name, a2, a3, num, baseTime.Add(at), nil, deleted)
	s.Require().NoError(err)
	return c
}

func (s *contractSuite) append(c models.Country) models.Country {
	stored, err := s.store.Append(s.ctx, c)
	s.Require().NoError(err)
	return stored
}

func (s *contractSuite) TestLookupPaths() {
	gb := s.append(s.version("United Kingdom", "GB", "GBR", "826", 0, false))

	s.Run("alpha2", func() {
		got, ok, err := s.store.LatestByAlpha2(s.ctx, "GB")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(gb, got)
		s.Nil(got.ExpiresAt)
		s.False(got.Deleted)
	})

	s.Run("alpha3", func() {
		got, ok, err := s.store.LatestByAlpha3(s.ctx, "GBR")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(gb, got)
	})

	s.Run("numeric", func() {
		got, ok, err := s.store.LatestByNumeric(s.ctx, "826")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(gb, got)
	})

	s.Run("unknown codes are absent, not errors", func() {
		_, ok, err := s.store.LatestByAlpha2(s.ctx, "XX")
		s.Require().NoError(err)
		s.False(ok)
		_, ok, err = s.store.LatestByAlpha3(s.ctx, "XXX")
		s.Require().NoError(err)
		s.False(ok)
		_, ok, err = s.store.LatestByNumeric(s.ctx, "999")
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *contractSuite) TestNewestVersionWins() {
	s.append(s.version("United Kingdom", "GB", "GBR", "826", 0, false))
	updated := s.append(s.version("UK Updated", "GB", "GBR", "826", time.Second, false))

	for name, lookup := range map[string]func() (models.Country, bool, error){
		"alpha2":  func() (models.Country, bool, error) { return s.store.LatestByAlpha2(s.ctx, "GB") },
		"alpha3":  func() (models.Country, bool, error) { return s.store.LatestByAlpha3(s.ctx, "GBR") },
		"numeric": func() (models.Country, bool, error) { return s.store.LatestByNumeric(s.ctx, "826") },
	} {
		s.Run(name, func() {
			got, ok, err := lookup()
			s.Require().NoError(err)
			s.Require().True(ok)
			s.Equal(updated, got)
		})
	}
}

func (s *contractSuite) TestTombstoneHidesChain() {
	s.append(s.version("United Kingdom", "GB", "GBR", "826", 0, false))
	s.append(s.version("United Kingdom", "GB", "GBR", "826", time.Second, true))

	_, ok, err := s.store.LatestByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.False(ok, "an older live version must not resurface behind a tombstone")

	_, ok, err = s.store.LatestByAlpha3(s.ctx, "GBR")
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.store.LatestByNumeric(s.ctx, "826")
	s.Require().NoError(err)
	s.False(ok)

	history, err := s.store.History(s.ctx, "GB")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.True(history[0].Deleted)
	s.False(history[1].Deleted)
}

func (s *contractSuite) TestExpiredHeadIsNotActive() {
	exp := baseTime.Add(time.Hour)
	c, err := models.NewCountry("Gondor", "GD", "GND", "998", baseTime, &exp, false)
	s.Require().NoError(err)
	s.append(c)

	_, ok, err := s.store.LatestByAlpha2(s.ctx, "GD")
	s.Require().NoError(err)
	s.False(ok)

	list, err := s.store.ListLatest(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Empty(list)

	history, err := s.store.History(s.ctx, "GD")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Require().NotNil(history[0].ExpiresAt)
	s.True(history[0].ExpiresAt.Equal(exp))
}

func (s *contractSuite) TestSameTimestampReplaces() {
	s.append(s.version("Old", "GB", "GBR", "826", 0, false))
	replaced := s.append(s.version("New", "GB", "GBX", "827", 0, false))

	history, err := s.store.History(s.ctx, "GB")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(replaced, history[0])

	_, ok, err := s.store.LatestByAlpha3(s.ctx, "GBR")
	s.Require().NoError(err)
	s.False(ok, "index entry of the replaced version must be gone")

	got, ok, err := s.store.LatestByAlpha3(s.ctx, "GBX")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("New", got.Name)
}

func (s *contractSuite) TestHistory() {
	s.Run("unknown chain is empty", func() {
		history, err := s.store.History(s.ctx, "ZZ")
		s.Require().NoError(err)
		s.NotNil(history)
		s.Empty(history)
	})

	s.Run("newest first", func() {
		s.append(s.version("v1", "FR", "FRA", "250", 0, false))
		s.append(s.version("v3", "FR", "FRA", "250", 2*time.Second, false))
		s.append(s.version("v2", "FR", "FRA", "250", time.Second, false))

		history, err := s.store.History(s.ctx, "FR")
		s.Require().NoError(err)
		s.Require().Len(history, 3)
		s.Equal([]string{"v3", "v2", "v1"}, []string{history[0].Name, history[1].Name, history[2].Name})
	})
}

func (s *contractSuite) TestListLatest() {
	s.append(s.version("United States", "US", "USA", "840", 0, false))
	s.append(s.version("United Kingdom", "GB", "GBR", "826", 0, false))
	s.append(s.version("UK Updated", "GB", "GBR", "826", time.Second, false))
	s.append(s.version("Germany", "DE", "DEU", "276", 0, false))
	s.append(s.version("Atlantis", "AT", "ATL", "040", 0, false))
	s.append(s.version("Atlantis", "AT", "ATL", "040", time.Second, true))

	s.Run("one active version per chain sorted by alpha2", func() {
		list, err := s.store.ListLatest(s.ctx, 20, 0)
		s.Require().NoError(err)
		s.Require().Len(list, 3)
		s.Equal("DE", list[0].Alpha2)
		s.Equal("GB", list[1].Alpha2)
		s.Equal("UK Updated", list[1].Name)
		s.Equal("US", list[2].Alpha2)
	})

	s.Run("pages are disjoint", func() {
		first, err := s.store.ListLatest(s.ctx, 1, 0)
		s.Require().NoError(err)
		second, err := s.store.ListLatest(s.ctx, 1, 1)
		s.Require().NoError(err)
		s.Require().Len(first, 1)
		s.Require().Len(second, 1)
		s.Equal("DE", first[0].Alpha2)
		s.Equal("GB", second[0].Alpha2)
	})

	s.Run("short final page", func() {
		list, err := s.store.ListLatest(s.ctx, 5, 2)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal("US", list[0].Alpha2)
	})

	s.Run("zero limit and large offset are empty", func() {
		list, err := s.store.ListLatest(s.ctx, 0, 0)
		s.Require().NoError(err)
		s.Empty(list)

		list, err = s.store.ListLatest(s.ctx, 10, 10)
		s.Require().NoError(err)
		s.Empty(list)
	})
}

func (s *contractSuite) TestReturnedVersionsAreCopies() {
	exp := baseTime.Add(time.Hour)
	c, err := models.NewCountry("Gondor", "GD", "GND", "998", baseTime, &exp, false)
	s.Require().NoError(err)
	stored := s.append(c)
	*stored.ExpiresAt = baseTime

	history, err := s.store.History(s.ctx, "GD")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.True(history[0].ExpiresAt.Equal(exp))
}

func (s *contractSuite) TestLookupByRetiredCode() {
	s.append(s.version("Old Name", "GB", "GBR", "826", 0, false))
	renamed := s.append(s.version("New Name", "GB", "GBX", "827", time.Second, false))

	got, ok, err := s.store.LatestByAlpha3(s.ctx, "GBX")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(renamed, got)

	// the retired code still resolves to the newest version that carried it
	got, ok, err = s.store.LatestByAlpha3(s.ctx, "GBR")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Old Name", got.Name)

	s.append(s.version("Old Name", "GB", "GBR", "826", 2*time.Second, true))
	_, ok, err = s.store.LatestByAlpha3(s.ctx, "GBR")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *contractSuite) TestSharedCodeSameInstantPrefersLargerAlpha2() {
	s.append(s.version("First", "AA", "ZZZ", "999", 0, false))
	s.append(s.version("Second", "BB", "ZZZ", "999", 0, false))
	s.append(s.version("Third", "AB", "ZZZ", "999", 0, false))

	got, ok, err := s.store.LatestByAlpha3(s.ctx, "ZZZ")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("BB", got.Alpha2)

	got, ok, err = s.store.LatestByNumeric(s.ctx, "999")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("BB", got.Alpha2)

	s.append(s.version("Second", "BB", "ZZZ", "999", time.Second, true))
	_, ok, err = s.store.LatestByAlpha3(s.ctx, "ZZZ")
	s.Require().NoError(err)
	s.False(ok, "the newest entry is a tombstone")
}
