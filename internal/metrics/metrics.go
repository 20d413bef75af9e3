// Package metrics collects tfcache's Prometheus metrics. It deliberately
// stops at registering collectors — exposing them over HTTP (promhttp) is an
// outer-surface concern the façade doesn't take on.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects the counters and histograms a Core façade updates
// around each lookup/backfill/search it performs.
type Recorder struct {
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	backfillBatches  prometheus.Counter
	backfillInserted prometheus.Counter
	backfillSkipped  prometheus.Counter
	searchCostNS     prometheus.Histogram
	lookupErrors     *prometheus.CounterVec
}

// NewRecorder registers tfcache's collectors against the default registry.
func NewRecorder() *Recorder {
	return NewRecorderWith(prometheus.DefaultRegisterer)
}

// NewRecorderWith registers tfcache's collectors against reg, so tests and
// multi-instance callers can avoid the default registry's global state.
func NewRecorderWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "tfcache_cache_hits_total",
			Help: "Lookup endpoint frames already covered by in-memory TimeCaches, without backfill.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "tfcache_cache_misses_total",
			Help: "Lookup endpoint frames not covered by in-memory TimeCaches at the requested time.",
		}),
		backfillBatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "tfcache_backfill_batches_total",
			Help: "Backfill queries issued against the document store.",
		}),
		backfillInserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tfcache_backfill_records_inserted_total",
			Help: "Records validated and inserted by backfill.",
		}),
		backfillSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "tfcache_backfill_records_skipped_total",
			Help: "Records rejected by backfill's local validation or by the registry's insert.",
		}),
		searchCostNS: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tfcache_search_cost_nanoseconds",
			Help:    "Minimax edge cost (nanoseconds) of the path PathSearch returned.",
			Buckets: prometheus.ExponentialBuckets(1e3, 10, 8), // 1µs .. 10s
		}),
		lookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tfcache_lookup_errors_total",
			Help: "Lookup failures by ErrorKind.",
		}, []string{"kind"}),
	}
}

// ObserveCacheHit records one lookup endpoint frame whose caches already
// cover the requested time.
func (r *Recorder) ObserveCacheHit() { r.cacheHits.Inc() }

// ObserveCacheMiss records one lookup endpoint frame whose caches do not
// cover the requested time; it is counted whether or not a backfill query
// follows.
func (r *Recorder) ObserveCacheMiss() { r.cacheMisses.Inc() }

// ObserveBackfill records the outcome of one Backfill call.
func (r *Recorder) ObserveBackfill(inserted, skipped int) {
	r.backfillBatches.Inc()
	r.backfillInserted.Add(float64(inserted))
	r.backfillSkipped.Add(float64(skipped))
}

// ObserveSearchCost records the minimax cost of a successful PathSearch.
func (r *Recorder) ObserveSearchCost(costNS int64) {
	r.searchCostNS.Observe(float64(costNS))
}

// ObserveLookupError increments the error counter for the given ErrorKind
// string (e.g. "no_data", "not_connected").
func (r *Recorder) ObserveLookupError(kind string) {
	r.lookupErrors.WithLabelValues(kind).Inc()
}
