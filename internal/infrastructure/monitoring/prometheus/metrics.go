package prometheus

import (
	"strconv"
	"time"
)

// MCSMetrics holds every metric the mapping service and its HTTP surface
// record.
type MCSMetrics struct {
	// Search
	SearchesTotal      CounterVec
	SearchDuration     HistogramVec
	CompatibilityNodes HistogramVec
	BudgetTicks        HistogramVec
	TimeoutsTotal      CounterVec
	MappingSize        HistogramVec
	ActiveSearches     GaugeVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
}

// Search outcomes used as the outcome label.
const (
	OutcomeOK      = "ok"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

var (
	DefaultSearchDurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30, 60}
	DefaultNodeBuckets           = []float64{10, 50, 100, 500, 1000, 5000, 10000, 20000}
	DefaultTickBuckets           = []float64{100, 1e3, 1e4, 1e5, 1e6, 1e7}
	DefaultSizeBuckets           = []float64{1, 2, 5, 10, 20, 50, 100}
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// NewMCSMetrics registers all metrics on collector.
func NewMCSMetrics(collector MetricsCollector) *MCSMetrics {
	m := &MCSMetrics{}

	m.SearchesTotal = collector.RegisterCounter("searches_total", "MCS searches by mode and outcome", "mode", "outcome")
	m.SearchDuration = collector.RegisterHistogram("search_duration_seconds", "MCS search wall time", DefaultSearchDurationBuckets, "mode")
	m.CompatibilityNodes = collector.RegisterHistogram("compatibility_nodes", "Compatibility graph size per search", DefaultNodeBuckets, "mode")
	m.BudgetTicks = collector.RegisterHistogram("budget_ticks", "Search budget ticks consumed", DefaultTickBuckets, "phase")
	m.TimeoutsTotal = collector.RegisterCounter("timeouts_total", "Searches that exhausted their budget", "mode")
	m.MappingSize = collector.RegisterHistogram("mapping_size_atoms", "Atoms in the published mappings", DefaultSizeBuckets, "mode")
	m.ActiveSearches = collector.RegisterGauge("active_searches", "Searches currently running", "mode")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Result cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Result cache misses", "cache")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")

	return m
}

// SearchObservation is what one finished search reports.
type SearchObservation struct {
	Mode               string
	Duration           time.Duration
	CompatibilityNodes int
	CliqueTicks        int64
	ExtensionTicks     int64
	Size               int
	Timeout            bool
	Err                error
}

// RecordSearch records one search.  A nil metrics is a no-op.
func RecordSearch(m *MCSMetrics, o SearchObservation) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	switch {
	case o.Err != nil:
		outcome = OutcomeError
	case o.Timeout:
		outcome = OutcomeTimeout
		m.TimeoutsTotal.WithLabelValues(o.Mode).Inc()
	}
	m.SearchesTotal.WithLabelValues(o.Mode, outcome).Inc()
	m.SearchDuration.WithLabelValues(o.Mode).Observe(o.Duration.Seconds())
	if o.Err != nil {
		return
	}
	m.CompatibilityNodes.WithLabelValues(o.Mode).Observe(float64(o.CompatibilityNodes))
	if o.CliqueTicks > 0 {
		m.BudgetTicks.WithLabelValues("clique").Observe(float64(o.CliqueTicks))
	}
	if o.ExtensionTicks > 0 {
		m.BudgetTicks.WithLabelValues("extension").Observe(float64(o.ExtensionTicks))
	}
	m.MappingSize.WithLabelValues(o.Mode).Observe(float64(o.Size))
}

// TrackActive increments the running-search gauge and returns its undo.
func TrackActive(m *MCSMetrics, mode string) func() {
	if m == nil {
		return func() {}
	}
	g := m.ActiveSearches.WithLabelValues(mode)
	g.Inc()
	return g.Dec
}

func RecordCacheAccess(m *MCSMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordHTTPRequest(m *MCSMetrics, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

//Personal.AI order the ending
