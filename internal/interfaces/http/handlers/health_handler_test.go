package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

func ok(context.Context) error { return nil }

func down(context.Context) error {
	return errors.New(errors.ErrCodeServiceUnavailable, "connection refused")
}

func serve(h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("v1.2.3", NewCheck("cache", down))

	w := serve(h.Liveness, "/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
	assert.NotEmpty(t, resp.Uptime)
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		w := serve(NewHealthHandler("dev").Readiness, "/readyz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("all healthy", func(t *testing.T) {
		h := NewHealthHandler("dev", NewCheck("cache", ok), NewCheck("object_store", ok))
		w := serve(h.Readiness, "/readyz")

		require.Equal(t, http.StatusOK, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Len(t, resp.Components, 2)
		assert.Equal(t, "healthy", resp.Components["object_store"].Status)
	})

	t.Run("one down", func(t *testing.T) {
		h := NewHealthHandler("dev", NewCheck("cache", down), NewCheck("object_store", ok))
		w := serve(h.Readiness, "/readyz")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "unhealthy", resp.Components["cache"].Status)
		assert.Contains(t, resp.Components["cache"].Error, "connection refused")
	})
}

func TestHealthHandler_Detailed(t *testing.T) {
	h := NewHealthHandler("dev", NewCheck("cache", down))

	w := serve(h.Detailed, "/healthz/detail")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp DetailedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "dev", resp.Version)
	assert.NotEmpty(t, resp.Components["cache"].Latency)
}

func TestHealthHandler_CheckSeesDeadline(t *testing.T) {
	var hasDeadline bool
	h := NewHealthHandler("dev", NewCheck("probe", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}))

	serve(h.Readiness, "/readyz")
	assert.True(t, hasDeadline)
}

//Personal.AI order the ending
