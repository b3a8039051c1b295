package middleware

import (
	"net/http"
	"time"

	prom "github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/prometheus"
)

// Metrics returns middleware that counts and times requests by method, chi
// route pattern and status.  Labelling by pattern rather than raw path keeps
// the series count bounded.
func Metrics(m *prom.MCSMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			prom.RecordHTTPRequest(m, r.Method, routePattern(r), rec.statusCode, time.Since(start))
		})
	}
}

//Personal.AI order the ending
