package prometheus

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{Subsystem: "unit"}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestNewMetricsCollector_WithRuntimeMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:            "test",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logging.NewNopLogger())
	require.NoError(t, err)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, "go_goroutines")
}

func TestRegisterCounter_Scrape(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("events_total", "events", "kind")
	vec.WithLabelValues("a").Inc()
	vec.WithLabelValues("a").Add(2)

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_events_total{kind="a"} 3`)
}

func TestRegisterGauge_Scrape(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("depth", "depth", "queue").WithLabelValues("q")
	g.Set(5)
	g.Inc()
	g.Dec()
	g.Dec()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_depth{queue="q"} 4`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterHistogram("latency_seconds", "latency", nil, "op").WithLabelValues("x").Observe(0.2)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_latency_seconds_bucket{op="x",le="0.25"} 1`)
	assert.Contains(t, out, `test_unit_latency_seconds_count{op="x"} 1`)
}

func TestRegister_SameNameReturnsExisting(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_total", "dup", "k").WithLabelValues("v").Inc()
	c.RegisterCounter("dup_total", "dup", "k").WithLabelValues("v").Inc()

	n, err := testutil.GatherAndCount(c.Gatherer(), "test_unit_dup_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, scrapeMetrics(t, c), `test_unit_dup_total{k="v"} 2`)
}

func TestRegister_TypeMismatchIsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("thing", "thing")
	g := c.RegisterGauge("thing", "thing")

	assert.NotPanics(t, func() { g.WithLabelValues().Set(1) })
	assert.IsType(t, noopGaugeVec{}, g)
}

func TestRegister_InvalidNameIsNoop(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("bad name", "bad")
	assert.IsType(t, noopCounterVec{}, vec)
	assert.NotPanics(t, func() { vec.WithLabelValues().Inc() })
}

func TestRegister_Concurrent(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("parallel_total", "p").WithLabelValues().Inc()
		}()
	}
	wg.Wait()
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_parallel_total 16")
}

func TestTimer_ObserveDuration(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("timer_seconds", "t", nil).WithLabelValues()

	timer := NewTimer(h)
	time.Sleep(2 * time.Millisecond)
	d := timer.ObserveDuration()

	assert.GreaterOrEqual(t, d, 2*time.Millisecond)
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_timer_seconds_count 1")
	assert.NotPanics(t, func() { NewTimer(nil).ObserveDuration() })
}

//Personal.AI order the ending
