package diagnostics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmopoeia/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_HealthzReportsStage(t *testing.T) {
	s := New("127.0.0.1:0", metrics.NewMetrics(), func() Status {
		return Status{Stage: "terrain"}
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "terrain")
}

func TestServer_HealthzReportsError(t *testing.T) {
	s := New("127.0.0.1:0", metrics.NewMetrics(), func() Status {
		return Status{Stage: "hydrology", Err: "prerequisite missing"}
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_MetricsEndpointServesPrometheusFormat(t *testing.T) {
	s := New("127.0.0.1:0", metrics.NewMetrics(), func() Status { return Status{} })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cosmopoeia_")
}

func TestServer_ListenAndServe_ShutsDownOnContextCancel(t *testing.T) {
	s := New("127.0.0.1:0", metrics.NewMetrics(), func() Status { return Status{} })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
