package metrics_test

import (
	"testing"

	"github.com/katalvlaran/tfcache/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func findCounter(t *testing.T, families []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		var total float64
		for _, m := range fam.GetMetric() {
			total += m.GetCounter().GetValue()
		}

		return total
	}
	t.Fatalf("metric family %q not found", name)

	return 0
}

func TestRecorder_ObserveCacheHitAndMiss(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorderWith(reg)

	r.ObserveCacheHit()
	r.ObserveCacheHit()
	r.ObserveCacheMiss()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Equal(t, 2.0, findCounter(t, families, "tfcache_cache_hits_total"))
	require.Equal(t, 1.0, findCounter(t, families, "tfcache_cache_misses_total"))
}

func TestRecorder_ObserveBackfill(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorderWith(reg)

	r.ObserveBackfill(3, 1)
	r.ObserveBackfill(2, 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Equal(t, 2.0, findCounter(t, families, "tfcache_backfill_batches_total"))
	require.Equal(t, 5.0, findCounter(t, families, "tfcache_backfill_records_inserted_total"))
	require.Equal(t, 1.0, findCounter(t, families, "tfcache_backfill_records_skipped_total"))
}

func TestRecorder_ObserveLookupError(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorderWith(reg)

	r.ObserveLookupError("no_data")
	r.ObserveLookupError("no_data")
	r.ObserveLookupError("timeout")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Equal(t, 3.0, findCounter(t, families, "tfcache_lookup_errors_total"))
}
