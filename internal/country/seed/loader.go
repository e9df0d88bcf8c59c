package seed

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"countryref/internal/country/events"
	"countryref/internal/country/metrics"
	"countryref/internal/country/models"
	dErrors "countryref/pkg/domain-errors"
	"countryref/pkg/platform/sentinel"
	"countryref/pkg/requestcontext"
)

// Dataset holds the bundled ISO 3166-1 country list.
//
//go:embed data/countries_iso3166b.csv
var Dataset embed.FS

// DatasetFile is the path of the bundled list inside Dataset.
const DatasetFile = "data/countries_iso3166b.csv"

const minFields = 5

var expectedHeader = []string{"iso2", "iso3", "iso_num", "country"}

// Appender is the store write path the loader feeds.
type Appender interface {
	Append(ctx context.Context, c models.Country) (models.Country, error)
}

// Publisher receives every version the loader stores.
type Publisher interface {
	Publish(ctx context.Context, e events.VersionAppended) error
}

// Loader bulk-loads countries from delimited text straight into the store.
// It bypasses the service: every row is a fresh create and all rows of one
// batch share a single version time.
type Loader struct {
	store     Appender
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher Publisher
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(l *Loader) {
		l.publisher = p
	}
}

func NewLoader(store Appender, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		logger:    slog.Default(),
		publisher: events.NopPublisher{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFS loads the named file from fsys. A missing source fails before any
// row is read.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS, name string) (int, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("seed source %s: %w", name, sentinel.ErrNotFound)
		}
		return 0, fmt.Errorf("open seed source %s: %w", name, err)
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Load reads a header row followed by country rows and appends each valid
// row. Malformed rows and rows the store rejects are logged and skipped.
// It returns the number of rows stored.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, dErrors.New(dErrors.CodeValidation, "invalid seed source: missing header")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "invalid seed source: unreadable header")
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	batchTime := models.VersionTime(requestcontext.Now(ctx))
	l.logger.InfoContext(ctx, "seeding countries", "create_date", batchTime)

	stored, skipped := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return stored, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			l.skip(ctx, &skipped, parseErr.Line, "unparsable row", "error", err)
			continue
		}
		if err != nil {
			return stored, fmt.Errorf("read seed source: %w", err)
		}
		line, _ := reader.FieldPos(0)

		c, reason, rowErr := parseRow(record, batchTime)
		if rowErr != nil || reason != "" {
			l.skip(ctx, &skipped, line, reason, "error", rowErr)
			continue
		}
		saved, err := l.store.Append(ctx, c)
		if err != nil {
			l.skip(ctx, &skipped, line, "store rejected row", "alpha2", c.Alpha2, "error", err)
			continue
		}
		stored++
		if l.metrics != nil {
			l.metrics.IncrementSeedStored()
		}
		if err := l.publisher.Publish(ctx, events.NewVersionAppended(events.OperationSeed, saved, batchTime)); err != nil {
			l.logger.WarnContext(ctx, "failed to publish seeded version", "alpha2", saved.Alpha2, "error", err)
			if l.metrics != nil {
				l.metrics.IncrementPublishFailure()
			}
		}
	}

	l.logger.InfoContext(ctx, "seeding finished", "stored", stored, "skipped", skipped)
	return stored, nil
}

func (l *Loader) skip(ctx context.Context, skipped *int, line int, reason string, args ...any) {
	*skipped++
	if l.metrics != nil {
		l.metrics.IncrementSeedSkipped()
	}
	l.logger.WarnContext(ctx, "skipping seed row", append([]any{"line", line, "reason", reason}, args...)...)
}

func checkHeader(header []string) error {
	if len(header) < len(expectedHeader) {
		return dErrors.New(dErrors.CodeValidation, "invalid seed source: header must start with "+strings.Join(expectedHeader, ","))
	}
	for i, want := range expectedHeader {
		got := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
		if got != want {
			return dErrors.New(dErrors.CodeValidation, "invalid seed source: header must start with "+strings.Join(expectedHeader, ","))
		}
	}
	return nil
}

// parseRow maps iso2,iso3,iso_num,country,... onto a version. A non-empty
// reason means the row is skipped.
func parseRow(record []string, at time.Time) (models.Country, string, error) {
	if len(record) < minFields {
		return models.Country{}, "insufficient fields", nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return models.Country{}, "numeric code is not a number", err
	}
	c, err := models.NewCountry(
		strings.TrimSpace(record[3]),
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		fmt.Sprintf("%03d", n),
		at, nil, false,
	)
	if err != nil {
		return models.Country{}, "invalid country", err
	}
	return c, "", nil
}
