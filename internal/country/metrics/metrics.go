package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the country module.
// Tracks appended versions, lookup misses, seeding progress and the duration
// of the read and write paths.
type Metrics struct {
	VersionsAppended *prometheus.CounterVec
	LookupMisses     *prometheus.CounterVec
	PublishFailures  prometheus.Counter
	SeedRows         *prometheus.CounterVec
	LookupDuration   *prometheus.HistogramVec
	ListDuration     prometheus.Histogram
	WriteDuration    *prometheus.HistogramVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers every country metric with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VersionsAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countryref_versions_appended_total",
			Help: "Total number of country versions appended, by operation",
		}, []string{"operation"}),
		LookupMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countryref_lookup_misses_total",
			Help: "Total number of lookups that found no active version, by code kind",
		}, []string{"code"}),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "countryref_publish_failures_total",
			Help: "Total number of version-change events that could not be published",
		}),
		SeedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countryref_seed_rows_total",
			Help: "Rows read by the bulk loader, by outcome (stored or skipped)",
		}, []string{"outcome"}),
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countryref_lookup_duration_seconds",
			Help:    "Duration of active-version lookups, by code kind",
			Buckets: latencyBuckets,
		}, []string{"code"}),
		ListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "countryref_list_duration_seconds",
			Help:    "Duration of listActive scans",
			Buckets: latencyBuckets,
		}),
		WriteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countryref_write_duration_seconds",
			Help:    "Duration of create, update and delete operations",
			Buckets: latencyBuckets,
		}, []string{"operation"}),
	}
}

// IncrementAppended records one appended version.
func (m *Metrics) IncrementAppended(operation string) {
	m.VersionsAppended.WithLabelValues(operation).Inc()
}

// IncrementLookupMiss records a lookup that resolved to NotFound.
func (m *Metrics) IncrementLookupMiss(code string) {
	m.LookupMisses.WithLabelValues(code).Inc()
}

func (m *Metrics) IncrementPublishFailure() {
	m.PublishFailures.Inc()
}

// IncrementSeedStored records a row the bulk loader stored.
func (m *Metrics) IncrementSeedStored() {
	m.SeedRows.WithLabelValues("stored").Inc()
}

// IncrementSeedSkipped records a row the bulk loader skipped.
func (m *Metrics) IncrementSeedSkipped() {
	m.SeedRows.WithLabelValues("skipped").Inc()
}

// ObserveLookup records the duration of a lookup by code kind.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(code string, start time.Time) {
	m.LookupDuration.WithLabelValues(code).Observe(time.Since(start).Seconds())
}

// ObserveList records the duration of a list operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// ObserveWrite records the duration of a write operation.
func (m *Metrics) ObserveWrite(operation string, start time.Time) {
	m.WriteDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
