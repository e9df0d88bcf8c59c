package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementAppended("create")
	m.IncrementAppended("create")
	m.IncrementAppended("delete")
	m.IncrementLookupMiss("alpha3")
	m.IncrementPublishFailure()
	m.IncrementSeedStored()
	m.IncrementSeedSkipped()
	m.IncrementSeedSkipped()

	assert.InDelta(t, 2, testutil.ToFloat64(m.VersionsAppended.WithLabelValues("create")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.VersionsAppended.WithLabelValues("delete")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupMisses.WithLabelValues("alpha3")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PublishFailures), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SeedRows.WithLabelValues("stored")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.SeedRows.WithLabelValues("skipped")), 0)
}

func TestHistogramsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	start := time.Now()
	m.ObserveLookup("alpha2", start)
	m.ObserveList(start)
	m.ObserveWrite("update", start)

	count, err := testutil.GatherAndCount(reg,
		"countryref_lookup_duration_seconds",
		"countryref_list_duration_seconds",
		"countryref_write_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer(prometheus.NewRegistry())
		NewWithRegisterer(prometheus.NewRegistry())
	})
}
