package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"countryref/internal/country/metrics"
	"countryref/internal/country/models"
	"countryref/internal/country/store"
	dErrors "countryref/pkg/domain-errors"
	"countryref/pkg/requestcontext"
)

// LifecycleSuite drives the service against a real in-memory store.
type LifecycleSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	service *Service
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = New(store.NewInMemory(),
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

var ukInput = models.CountryInput{Name: "United Kingdom", Alpha2: "GB", Alpha3: "GBR", Numeric: "826"}

func (s *LifecycleSuite) TestReadAfterCreate() {
	created, err := s.service.Create(s.ctx, ukInput)
	s.Require().NoError(err)

	byAlpha2, err := s.service.GetByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.Equal(created, byAlpha2)
	s.False(byAlpha2.Deleted)
	s.Nil(byAlpha2.ExpiresAt)

	byAlpha3, err := s.service.GetByAlpha3(s.ctx, "GBR")
	s.Require().NoError(err)
	s.Equal(created, byAlpha3)

	byNumeric, err := s.service.GetByNumeric(s.ctx, "826")
	s.Require().NoError(err)
	s.Equal(created, byNumeric)
}

func (s *LifecycleSuite) TestUpdateAddsVersion() {
	created, err := s.service.Create(s.ctx, ukInput)
	s.Require().NoError(err)

	updatedInput := ukInput
	updatedInput.Name = "UK Updated"
	updated, err := s.service.UpdateByAlpha2(s.ctx, "GB", updatedInput)
	s.Require().NoError(err)

	history, err := s.service.HistoryByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(updated, history[0])
	s.Equal(created, history[1])
	s.True(history[0].CreatedAt.After(history[1].CreatedAt))

	active, err := s.service.GetByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.Equal("UK Updated", active.Name)
	s.InDelta(2, testutil.ToFloat64(s.metrics.VersionsAppended.WithLabelValues("create"))+
		testutil.ToFloat64(s.metrics.VersionsAppended.WithLabelValues("update")), 0)
}

func (s *LifecycleSuite) TestDeleteHidesChain() {
	_, err := s.service.Create(s.ctx, ukInput)
	s.Require().NoError(err)
	s.Require().NoError(s.service.DeleteByAlpha2(s.ctx, "GB"))

	_, err = s.service.GetByAlpha2(s.ctx, "GB")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.GetByAlpha3(s.ctx, "GBR")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.GetByNumeric(s.ctx, "826")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	history, err := s.service.HistoryByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.True(history[0].Deleted)
	s.False(history[1].Deleted)

	s.Run("deleted chain cannot be updated or deleted again", func() {
		_, err := s.service.UpdateByAlpha2(s.ctx, "GB", ukInput)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.True(dErrors.HasCode(s.service.DeleteByAlpha2(s.ctx, "GB"), dErrors.CodeNotFound))
	})

	s.Run("create reinstates it", func() {
		revived, err := s.service.Create(s.ctx, ukInput)
		s.Require().NoError(err)
		active, err := s.service.GetByAlpha2(s.ctx, "GB")
		s.Require().NoError(err)
		s.Equal(revived, active)
	})
}

func (s *LifecycleSuite) TestNeverCreatedIsNotFound() {
	_, err := s.service.GetByAlpha2(s.ctx, "XX")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.InDelta(1, testutil.ToFloat64(s.metrics.LookupMisses.WithLabelValues("alpha2")), 0)
}

func (s *LifecycleSuite) TestPagesAreDisjoint() {
	_, err := s.service.Create(s.ctx, ukInput)
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, models.CountryInput{Name: "France", Alpha2: "FR", Alpha3: "FRA", Numeric: "250"})
	s.Require().NoError(err)

	first, err := s.service.List(s.ctx, 1, 0)
	s.Require().NoError(err)
	second, err := s.service.List(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(first, 1)
	s.Require().Len(second, 1)
	s.NotEqual(first[0].Alpha2, second[0].Alpha2)
	s.ElementsMatch([]string{"FR", "GB"}, []string{first[0].Alpha2, second[0].Alpha2})
}

func (s *LifecycleSuite) TestCreateOverExistingIsUpsert() {
	_, err := s.service.Create(s.ctx, ukInput)
	s.Require().NoError(err)
	again := ukInput
	again.Name = "Britain"
	_, err = s.service.Create(s.ctx, again)
	s.Require().NoError(err)

	list, err := s.service.List(s.ctx, 20, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Britain", list[0].Name)

	history, err := s.service.HistoryByAlpha2(s.ctx, "GB")
	s.Require().NoError(err)
	s.Len(history, 2)
}
