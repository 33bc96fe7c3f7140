package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/civic-etl-go/internal/clean"
)

const namespace = "civic_etl"

// Registry holds every collector exported on /metrics
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	rowsDropped = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows excluded by a cleaning rule",
		},
		[]string{"dataset", "rule"},
	)

	cellsFixed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_fixed_total",
			Help:      "Cells corrected in place by a cleaning rule",
		},
		[]string{"dataset", "rule"},
	)

	rowsOut = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_out",
			Help:      "Rows produced by the last run of a dataset",
		},
		[]string{"dataset"},
	)

	runDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of pipeline runs per dataset",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"dataset", "status"},
	)

	fetchRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Upstream fetch attempts by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// ObserveReport exports a cleaning report's counts
func ObserveReport(r *clean.Report) {
	if r == nil {
		return
	}
	for rule, n := range r.Dropped {
		rowsDropped.WithLabelValues(r.Dataset, rule).Add(float64(n))
	}
	for rule, n := range r.Fixed {
		cellsFixed.WithLabelValues(r.Dataset, rule).Add(float64(n))
	}
	rowsOut.WithLabelValues(r.Dataset).Set(float64(r.RowsOut))
}

// ObserveRun records how long a dataset run took
func ObserveRun(dataset, status string, d time.Duration) {
	runDuration.WithLabelValues(dataset, status).Observe(d.Seconds())
}

// ObserveFetch counts one upstream request attempt
func ObserveFetch(source, outcome string) {
	fetchRequests.WithLabelValues(source, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
