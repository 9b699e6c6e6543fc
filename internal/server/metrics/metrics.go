// Package metrics exposes Prometheus counters for the sheet endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "fuellog_sheet_"

// Request results.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics owns its registry so that several endpoints (and tests) can live
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	rowsStored prometheus.Counter
	rowsListed prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "requests_total",
				Help: "Total sheet requests by action and result",
			},
			[]string{"action", "result"},
		),
		rowsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "rows_appended_total",
			Help: "Rows reported as stored by appendFuel",
		}),
		rowsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "rows_listed_total",
			Help: "Rows returned by listFuel",
		}),
	}
	m.registry.MustRegister(m.requests, m.rowsStored, m.rowsListed)
	return m
}

// ObserveRequest counts one request. action is "unknown" for bodies that
// could not be decoded.
func (m *Metrics) ObserveRequest(action, result string) {
	m.requests.WithLabelValues(action, result).Inc()
}

func (m *Metrics) AddStored(n int) {
	m.rowsStored.Add(float64(n))
}

func (m *Metrics) AddListed(n int) {
	m.rowsListed.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
