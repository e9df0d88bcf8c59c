package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"countryref/internal/country/events"
	"countryref/internal/country/metrics"
	"countryref/internal/country/models"
	dErrors "countryref/pkg/domain-errors"
	"countryref/pkg/requestcontext"
)

const tracerName = "countryref/internal/country/service"

// VersionStore is the append-only version log. Absence is reported as
// (zero, false, nil), never as an error.
type VersionStore interface {
	Append(ctx context.Context, c models.Country) (models.Country, error)
	LatestByAlpha2(ctx context.Context, alpha2 string) (models.Country, bool, error)
	LatestByAlpha3(ctx context.Context, alpha3 string) (models.Country, bool, error)
	LatestByNumeric(ctx context.Context, numeric string) (models.Country, bool, error)
	ListLatest(ctx context.Context, limit, offset int) ([]models.Country, error)
	History(ctx context.Context, alpha2 string) ([]models.Country, error)
}

// Publisher receives every version the service appends.
type Publisher interface {
	Publish(ctx context.Context, e events.VersionAppended) error
}

// Service owns the create/update/delete state machine over country chains.
// It is the only component that decides what the next version looks like.
type Service struct {
	store     VersionStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher Publisher
	tracer    trace.Tracer
	clock     *versionClock
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(store VersionStore, opts ...Option) *Service {
	s := &Service{
		store:     store,
		logger:    slog.Default(),
		publisher: events.NopPublisher{},
		tracer:    otel.Tracer(tracerName),
		clock:     &versionClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a new active version. There is no existence check: creating
// over an existing chain adds a newer version, which also revives a deleted
// chain.
func (s *Service) Create(ctx context.Context, in models.CountryInput) (models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.Create")
	defer span.End()
	defer s.observeWrite(events.OperationCreate, time.Now())

	in.Normalize()
	span.SetAttributes(attribute.String("country.alpha2", in.Alpha2))

	c, err := models.NewCountry(in.Name, in.Alpha2, in.Alpha3, in.Numeric, s.clock.next(requestcontext.Now(ctx)), nil, false)
	if err != nil {
		return models.Country{}, err
	}
	return s.append(ctx, span, events.OperationCreate, c)
}

// GetByAlpha2 returns the active version of a chain.
func (s *Service) GetByAlpha2(ctx context.Context, alpha2 string) (models.Country, error) {
	return s.lookup(ctx, "alpha2", models.NormalizeCode(alpha2), s.store.LatestByAlpha2)
}

// GetByAlpha3 returns the active version reached through the alpha3 index.
func (s *Service) GetByAlpha3(ctx context.Context, alpha3 string) (models.Country, error) {
	return s.lookup(ctx, "alpha3", models.NormalizeCode(alpha3), s.store.LatestByAlpha3)
}

// GetByNumeric returns the active version reached through the numeric index.
func (s *Service) GetByNumeric(ctx context.Context, numeric string) (models.Country, error) {
	return s.lookup(ctx, "numeric", models.NormalizeCode(numeric), s.store.LatestByNumeric)
}

// List returns one active version per chain ordered by alpha2.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.List", trace.WithAttributes(
		attribute.Int("list.limit", limit),
		attribute.Int("list.offset", offset),
	))
	defer span.End()

	if limit < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "limit must not be negative")
	}
	if offset < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "offset must not be negative")
	}

	start := time.Now()
	list, err := s.store.ListLatest(ctx, limit, offset)
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}
	if err != nil {
		return nil, s.internal(ctx, span, err, "failed to list countries")
	}
	return list, nil
}

// UpdateByAlpha2 appends a version with the input's fields to an existing
// chain. The path code is the chain key; an alpha2 in the input is ignored.
// The deleted flag is carried over from the current active version.
func (s *Service) UpdateByAlpha2(ctx context.Context, alpha2 string, in models.CountryInput) (models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.Update")
	defer span.End()
	defer s.observeWrite(events.OperationUpdate, time.Now())

	alpha2 = models.NormalizeCode(alpha2)
	span.SetAttributes(attribute.String("country.alpha2", alpha2))

	current, err := s.GetByAlpha2(ctx, alpha2)
	if err != nil {
		return models.Country{}, err
	}

	in.Normalize()
	c, err := models.NewCountry(in.Name, alpha2, in.Alpha3, in.Numeric, s.nextAfter(ctx, current), nil, current.Deleted)
	if err != nil {
		return models.Country{}, err
	}
	return s.append(ctx, span, events.OperationUpdate, c)
}

// DeleteByAlpha2 appends a tombstone copying the current active version.
func (s *Service) DeleteByAlpha2(ctx context.Context, alpha2 string) error {
	ctx, span := s.tracer.Start(ctx, "country.Delete")
	defer span.End()
	defer s.observeWrite(events.OperationDelete, time.Now())

	alpha2 = models.NormalizeCode(alpha2)
	span.SetAttributes(attribute.String("country.alpha2", alpha2))

	current, err := s.GetByAlpha2(ctx, alpha2)
	if err != nil {
		return err
	}

	tombstone, err := models.NewCountry(current.Name, current.Alpha2, current.Alpha3, current.Numeric, s.nextAfter(ctx, current), nil, true)
	if err != nil {
		return s.internal(ctx, span, err, "stored version failed validation")
	}
	_, err = s.append(ctx, span, events.OperationDelete, tombstone)
	return err
}

// HistoryByAlpha2 returns every version of a chain, newest first. Unknown
// codes give an empty history.
func (s *Service) HistoryByAlpha2(ctx context.Context, alpha2 string) ([]models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.History")
	defer span.End()

	alpha2 = models.NormalizeCode(alpha2)
	span.SetAttributes(attribute.String("country.alpha2", alpha2))

	history, err := s.store.History(ctx, alpha2)
	if err != nil {
		return nil, s.internal(ctx, span, err, "failed to load country history")
	}
	if history == nil {
		history = []models.Country{}
	}
	return history, nil
}

type latestFunc func(ctx context.Context, code string) (models.Country, bool, error)

func (s *Service) lookup(ctx context.Context, kind, code string, find latestFunc) (models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.Get", trace.WithAttributes(
		attribute.String("lookup.kind", kind),
		attribute.String("lookup.code", code),
	))
	defer span.End()

	start := time.Now()
	c, ok, err := find(ctx, code)
	if s.metrics != nil {
		s.metrics.ObserveLookup(kind, start)
	}
	if err != nil {
		return models.Country{}, s.internal(ctx, span, err, "failed to load country")
	}
	if !ok {
		if s.metrics != nil {
			s.metrics.IncrementLookupMiss(kind)
		}
		return models.Country{}, dErrors.New(dErrors.CodeNotFound, "country not found: "+code)
	}
	return c, nil
}

func (s *Service) append(ctx context.Context, span trace.Span, op events.Operation, c models.Country) (models.Country, error) {
	stored, err := s.store.Append(ctx, c)
	if err != nil {
		return models.Country{}, s.internal(ctx, span, err, "failed to store country version")
	}

	s.logger.InfoContext(ctx, "country version appended",
		"operation", string(op),
		"alpha2", stored.Alpha2,
		"create_date", stored.CreatedAt,
		"deleted", stored.Deleted,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementAppended(string(op))
	}
	s.publish(ctx, op, stored)
	return stored, nil
}

// publish is best effort: the version is already stored.
func (s *Service) publish(ctx context.Context, op events.Operation, c models.Country) {
	if err := s.publisher.Publish(ctx, events.NewVersionAppended(op, c, requestcontext.Now(ctx))); err != nil {
		s.logger.WarnContext(ctx, "failed to publish version change",
			"operation", string(op),
			"alpha2", c.Alpha2,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncrementPublishFailure()
		}
	}
}

func (s *Service) internal(ctx context.Context, span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// nextAfter issues a version time strictly later than prev.
func (s *Service) nextAfter(ctx context.Context, prev models.Country) time.Time {
	t := s.clock.next(requestcontext.Now(ctx))
	if !t.After(prev.CreatedAt) {
		t = s.clock.next(prev.CreatedAt.Add(time.Microsecond))
	}
	return t
}

func (s *Service) observeWrite(op events.Operation, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveWrite(string(op), start)
	}
}
