// Package metrics exposes Prometheus metrics for credential issuance.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdminBXVentures/embedbroker/internal/core"
)

const namespace = "embedbroker"

// Credential kinds used as label values.
const (
	KindChatKitSession = "chatkit_session"
	KindTableauJWT     = "tableau_jwt"
)

// Metrics owns a dedicated registry so tests can create as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry
	issued   *prometheus.CounterVec
	failures *prometheus.CounterVec
	upstream *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credentials_issued_total",
			Help:      "Number of credentials handed out to callers.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_failures_total",
			Help:      "Number of failed credential requests by failure reason.",
		}, []string{"kind", "reason"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream session-creation calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.issued,
		m.failures,
		m.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Issued(kind string) {
	m.issued.WithLabelValues(kind).Inc()
}

func (m *Metrics) Failed(kind string, err error) {
	m.failures.WithLabelValues(kind, Reason(err)).Inc()
}

// ObserveUpstream matches chatkit.DurationObserver.
func (m *Metrics) ObserveUpstream(d time.Duration, err error) {
	m.upstream.WithLabelValues(Reason(err)).Observe(d.Seconds())
}

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrUpstreamTimeout):
		return "timeout"
	}
	if kind := core.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "error"
}
