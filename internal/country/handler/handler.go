package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"countryref/internal/country/models"
	dErrors "countryref/pkg/domain-errors"
	"countryref/pkg/platform/httputil"
	request "countryref/pkg/platform/middleware/request"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// Service defines the country operations the HTTP layer needs.
type Service interface {
	Create(ctx context.Context, in models.CountryInput) (models.Country, error)
	GetByAlpha2(ctx context.Context, alpha2 string) (models.Country, error)
	GetByAlpha3(ctx context.Context, alpha3 string) (models.Country, error)
	GetByNumeric(ctx context.Context, numeric string) (models.Country, error)
	List(ctx context.Context, limit, offset int) ([]models.Country, error)
	UpdateByAlpha2(ctx context.Context, alpha2 string, in models.CountryInput) (models.Country, error)
	DeleteByAlpha2(ctx context.Context, alpha2 string) error
	HistoryByAlpha2(ctx context.Context, alpha2 string) ([]models.Country, error)
}

// Handler serves the country reference API.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new country Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the country routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1/countries", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/code/{alpha2}", h.handleGetByAlpha2)
		r.Put("/code/{alpha2}", h.handleUpdate)
		r.Delete("/code/{alpha2}", h.handleDelete)
		r.Get("/code/{alpha2}/history", h.handleHistory)
		r.Get("/code3/{alpha3}", h.handleGetByAlpha3)
		r.Get("/number/{numeric}", h.handleGetByNumeric)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset", defaultOffset)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	list, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ToResponses(list))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in models.CountryInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	created, err := h.service.Create(ctx, in)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.ToResponse(created))
}

func (h *Handler) handleGetByAlpha2(w http.ResponseWriter, r *http.Request) {
	h.writeCountry(w, r, h.service.GetByAlpha2, chi.URLParam(r, "alpha2"))
}

func (h *Handler) handleGetByAlpha3(w http.ResponseWriter, r *http.Request) {
	h.writeCountry(w, r, h.service.GetByAlpha3, chi.URLParam(r, "alpha3"))
}

func (h *Handler) handleGetByNumeric(w http.ResponseWriter, r *http.Request) {
	h.writeCountry(w, r, h.service.GetByNumeric, chi.URLParam(r, "numeric"))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in models.CountryInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	updated, err := h.service.UpdateByAlpha2(ctx, chi.URLParam(r, "alpha2"), in)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ToResponse(updated))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeleteByAlpha2(ctx, chi.URLParam(r, "alpha2")); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history, err := h.service.HistoryByAlpha2(ctx, chi.URLParam(r, "alpha2"))
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ToResponses(history))
}

func (h *Handler) writeCountry(w http.ResponseWriter, r *http.Request, get func(context.Context, string) (models.Country, error), code string) {
	ctx := r.Context()
	c, err := get(ctx, code)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ToResponse(c))
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	requestID := request.GetRequestID(ctx)
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		h.logger.ErrorContext(ctx, "country request failed",
			"request_id", requestID,
			"error", err.Error(),
		)
	default:
		h.logger.InfoContext(ctx, "country request rejected",
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+name+": must be an integer")
	}
	return n, nil
}
