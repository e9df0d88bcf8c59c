package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"countryref/internal/country/handler/mocks"
	"countryref/internal/country/models"
	dErrors "countryref/pkg/domain-errors"
	"countryref/pkg/platform/sentinel"
	"countryref/pkg/testutil"
)

type CountryHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	gb      models.Country
}

func TestCountryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CountryHandlerSuite))
}

func (s *CountryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)

	gb, err := models.NewCountry("United Kingdom", "GB", "GBR", "826",
		time.Date(2025, 1, 15, 9, 30, 0, 123456000, time.UTC), nil, false)
	s.Require().NoError(err)
	s.gb = gb
}

func (s *CountryHandlerSuite) do(req *http.Request) map[string]any {
	rr := testutil.Do(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return testutil.Decode[map[string]any](s.T(), rr)
}

func (s *CountryHandlerSuite) TestGetRoutes() {
	s.Run("alpha2", func() {
		s.service.EXPECT().GetByAlpha2(gomock.Any(), "GB").Return(s.gb, nil)
		body := s.do(testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/code/GB", nil))

		s.Equal("United Kingdom", body["name"])
		s.Equal("GB", body["alpha2Code"])
		s.Equal("GBR", body["alpha3Code"])
		s.Equal("826", body["numericCode"])
		s.Equal("2025-01-15T09:30:00.123456Z", body["createDate"])
		s.Contains(body, "expiryDate")
		s.Nil(body["expiryDate"])
		s.Equal(false, body["isDeleted"])
	})

	s.Run("alpha3", func() {
		s.service.EXPECT().GetByAlpha3(gomock.Any(), "GBR").Return(s.gb, nil)
		body := s.do(testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/code3/GBR", nil))
		s.Equal("GB", body["alpha2Code"])
	})

	s.Run("numeric", func() {
		s.service.EXPECT().GetByNumeric(gomock.Any(), "826").Return(s.gb, nil)
		body := s.do(testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/number/826", nil))
		s.Equal("GB", body["alpha2Code"])
	})

	s.Run("not found is 404", func() {
		s.service.EXPECT().GetByAlpha2(gomock.Any(), "XX").Return(models.Country{}, dErrors.New(dErrors.CodeNotFound, "country not found: XX"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/code/XX", nil))
		testutil.AssertError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("storage failure is 500 without details", func() {
		s.service.EXPECT().GetByAlpha3(gomock.Any(), "GBR").Return(models.Country{},
			dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeInternal, "failed to load country"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/code3/GBR", nil))
		testutil.AssertError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.NotContains(rr.Body.String(), "error_description")
	})
}

func (s *CountryHandlerSuite) TestList() {
	s.Run("defaults", func() {
		s.service.EXPECT().List(gomock.Any(), 20, 0).Return([]models.Country{s.gb}, nil)
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries", nil))
		s.Require().Equal(http.StatusOK, rr.Code)
		list := testutil.Decode[[]map[string]any](s.T(), rr)
		s.Require().Len(list, 1)
		s.Equal("GB", list[0]["alpha2Code"])
	})

	s.Run("explicit paging", func() {
		s.service.EXPECT().List(gomock.Any(), 5, 10).Return([]models.Country{}, nil)
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/?limit=5&offset=10", nil))
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`[]`, rr.Body.String())
	})

	s.Run("non-integer limit is 400", func() {
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries?limit=ten", nil))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("negative offset is 400", func() {
		s.service.EXPECT().List(gomock.Any(), 20, -1).Return(nil, dErrors.New(dErrors.CodeValidation, "offset must not be negative"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries?offset=-1", nil))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *CountryHandlerSuite) TestCreate() {
	input := models.CountryInput{Name: "United Kingdom", Alpha2: "GB", Alpha3: "GBR", Numeric: "826"}

	s.Run("201 with the created version", func() {
		s.service.EXPECT().Create(gomock.Any(), input).Return(s.gb, nil)
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/countries", map[string]string{
			"name": "United Kingdom", "alpha2Code": "GB", "alpha3Code": "GBR", "numericCode": "826",
		}))
		s.Require().Equal(http.StatusCreated, rr.Code)
		body := testutil.Decode[map[string]any](s.T(), rr)
		s.Equal("GB", body["alpha2Code"])
	})

	s.Run("validation error is 400", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Country{},
			dErrors.New(dErrors.CodeValidation, "invalid alpha2Code, expected [A-Z]{2}"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/countries", map[string]string{
			"name": "X", "alpha2Code": "G1", "alpha3Code": "GBR", "numericCode": "826",
		}))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "validation_error")
		s.Contains(rr.Body.String(), "invalid alpha2Code")
	})

	s.Run("malformed body is 400", func() {
		rr := testutil.Do(s.router, testutil.NewRawRequest(s.T(), http.MethodPost, "/api/v1/countries", `{"name":`))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("empty body is 400", func() {
		rr := testutil.Do(s.router, testutil.NewRawRequest(s.T(), http.MethodPost, "/api/v1/countries", ""))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *CountryHandlerSuite) TestUpdate() {
	s.Run("200 with the new version", func() {
		updated := s.gb
		updated.Name = "UK Updated"
		s.service.EXPECT().UpdateByAlpha2(gomock.Any(), "GB", models.CountryInput{Name: "UK Updated", Alpha3: "GBR", Numeric: "826"}).Return(updated, nil)

		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/v1/countries/code/GB", map[string]string{
			"name": "UK Updated", "alpha3Code": "GBR", "numericCode": "826",
		}))
		s.Require().Equal(http.StatusOK, rr.Code)
		s.Equal("UK Updated", testutil.Decode[map[string]any](s.T(), rr)["name"])
	})

	s.Run("missing chain is 404", func() {
		s.service.EXPECT().UpdateByAlpha2(gomock.Any(), "XX", gomock.Any()).Return(models.Country{}, dErrors.New(dErrors.CodeNotFound, "country not found: XX"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/v1/countries/code/XX", map[string]string{"name": "X"}))
		testutil.AssertError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *CountryHandlerSuite) TestDelete() {
	s.Run("204 with empty body", func() {
		s.service.EXPECT().DeleteByAlpha2(gomock.Any(), "GB").Return(nil)
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodDelete, "/api/v1/countries/code/GB", nil))
		s.Equal(http.StatusNoContent, rr.Code)
		s.Empty(rr.Body.String())
	})

	s.Run("missing chain is 404", func() {
		s.service.EXPECT().DeleteByAlpha2(gomock.Any(), "XX").Return(dErrors.New(dErrors.CodeNotFound, "country not found: XX"))
		rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodDelete, "/api/v1/countries/code/XX", nil))
		testutil.AssertError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *CountryHandlerSuite) TestHistory() {
	tombstone := s.gb
	tombstone.Deleted = true
	tombstone.CreatedAt = s.gb.CreatedAt.Add(time.Second)
	s.service.EXPECT().HistoryByAlpha2(gomock.Any(), "GB").Return([]models.Country{tombstone, s.gb}, nil)

	rr := testutil.Do(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/v1/countries/code/GB/history", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	list := testutil.Decode[[]map[string]any](s.T(), rr)
	s.Require().Len(list, 2)
	s.Equal(true, list[0]["isDeleted"])
	s.Equal(false, list[1]["isDeleted"])
}
