package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/clean"
)

func TestObserveReport(t *testing.T) {
	r := clean.NewReport("metrics_test")
	r.Drop("duration_too_long")
	r.Drop("duration_too_long")
	r.Fix("censored_gust", 3)
	r.RowsOut = 10

	ObserveReport(r)
	ObserveReport(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(rowsDropped.WithLabelValues("metrics_test", "duration_too_long")))
	assert.Equal(t, 3.0, testutil.ToFloat64(cellsFixed.WithLabelValues("metrics_test", "censored_gust")))
	assert.Equal(t, 10.0, testutil.ToFloat64(rowsOut.WithLabelValues("metrics_test")))
}

func TestHandler(t *testing.T) {
	ObserveRun("metrics_test", "succeeded", 2*time.Second)
	ObserveFetch("metrics_test", "ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "civic_etl_run_duration_seconds")
	assert.Contains(t, rec.Body.String(), `civic_etl_fetch_requests_total{outcome="ok",source="metrics_test"} 1`)
}
