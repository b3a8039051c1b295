package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/testutil"
)

func statusHandler(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("body"))
	}
}

func newLoggedRouter(log *testutil.MockLogger, cfg LoggingConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogging(log, cfg))
	r.Post("/api/v1/match", statusHandler(http.StatusOK))
	r.Post("/api/v1/bad", statusHandler(http.StatusBadRequest))
	r.Post("/api/v1/boom", statusHandler(http.StatusInternalServerError))
	r.Get("/healthz", statusHandler(http.StatusOK))
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestRequestLogging_Levels(t *testing.T) {
	cases := []struct {
		method, path string
		level, msg   string
	}{
		{http.MethodPost, "/api/v1/match", "info", "request completed"},
		{http.MethodPost, "/api/v1/bad", "warn", "request rejected"},
		{http.MethodPost, "/api/v1/boom", "error", "request failed"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			log := testutil.NewMockLogger()
			r := newLoggedRouter(log, DefaultLoggingConfig())

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, nil))

			msg, ok := log.Find(tc.level, tc.msg)
			require.True(t, ok, "expected %s %q", tc.level, tc.msg)
			assert.Equal(t, "http", msg.Logger)
			route, _ := msg.Field("route")
			assert.Equal(t, tc.path, route)
			bytes, _ := msg.Field("bytes")
			assert.Equal(t, int64(4), bytes)
			id, ok := msg.Field("request_id")
			assert.True(t, ok)
			assert.NotEmpty(t, id)
		})
	}
}

func TestRequestLogging_SkipsPaths(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newLoggedRouter(log, DefaultLoggingConfig())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Empty(t, log.GetMessages())
}

func TestRequestLogging_Slow(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newLoggedRouter(log, LoggingConfig{SlowThreshold: time.Millisecond})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.True(t, log.HasMessage("warn", "slow request"))
}

func TestRequestLogging_Unmatched(t *testing.T) {
	log := testutil.NewMockLogger()
	r := newLoggedRouter(log, LoggingConfig{})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	msg, ok := log.Find("warn", "request rejected")
	require.True(t, ok)
	status, _ := msg.Field("status")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	w := httptest.NewRecorder()
	rec := newStatusRecorder(w)

	_, err := rec.Write([]byte("abc"))
	require.NoError(t, err)
	rec.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, rec.statusCode)
	assert.Equal(t, int64(3), rec.bytesWritten)
	assert.Equal(t, w, rec.Unwrap())
}

//Personal.AI order the ending
