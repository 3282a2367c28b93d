// Package metrics expone contadores Prometheus de las evaluaciones de riesgo.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credit-risk/internal/domain"
)

// Tipos de fallo registrados en FailuresTotal.
const (
	FailureInvalidCategory  = "invalid_category"
	FailureUnexpectedOutput = "unexpected_output"
	FailureInference        = "inference"
)

// Metrics agrupa los colectores del servicio sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	AssessmentsTotal  *prometheus.CounterVec
	FailuresTotal     *prometheus.CounterVec
	InferenceDuration prometheus.Histogram
	HTTPRequestsTotal *prometheus.CounterVec
}

// New crea y registra los colectores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "credit_risk",
			Name:      "assessments_total",
			Help:      "Risk assessments by verdict",
		}, []string{"verdict"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "credit_risk",
			Name:      "assessment_failures_total",
			Help:      "Failed risk assessments by kind",
		}, []string{"kind"}),
		InferenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "credit_risk",
			Name:      "inference_duration_seconds",
			Help:      "Classifier call latency",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "credit_risk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.AssessmentsTotal,
		m.FailuresTotal,
		m.InferenceDuration,
		m.HTTPRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler devuelve el endpoint de exposicion.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Los metodos Observe* aceptan un receptor nil para que los tests no
// necesiten metricas.

func (m *Metrics) ObserveVerdict(v domain.Verdict) {
	if m == nil {
		return
	}
	m.AssessmentsTotal.WithLabelValues(v.String()).Inc()
}

func (m *Metrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveInference(d time.Duration) {
	if m == nil {
		return
	}
	m.InferenceDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
