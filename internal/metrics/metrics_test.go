package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/formbuilder/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveQuery(t *testing.T) {
	m := New()

	m.ObserveQuery("form.get", time.Millisecond, nil)
	m.ObserveQuery("form.get", time.Millisecond, repository.ErrNotFound)
	m.ObserveQuery("form.create", time.Millisecond, repository.ErrConflict)
	m.ObserveQuery("form.create", time.Millisecond, errors.New("disk I/O error"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.DBOperationsTotal.WithLabelValues("form.get", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DBOperationsTotal.WithLabelValues("form.get", "not_found")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DBOperationsTotal.WithLabelValues("form.create", "conflict")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DBOperationsTotal.WithLabelValues("form.create", "error")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordHTTPRequest(http.MethodGet, "/api/forms/{tenantId}", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `formbuilder_http_requests_total{method="GET",route="/api/forms/{tenantId}",status="200"} 1`))
}

func TestNew_IsolatedRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	require.NotPanics(t, func() {
		New()
		New()
	})
}
