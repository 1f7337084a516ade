package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	RemoteRequests  *prometheus.CounterVec
	RemoteDuration  *prometheus.HistogramVec
	Transitions     *prometheus.CounterVec
	SessionSignIns  *prometheus.CounterVec
	DivergedEntries prometheus.Counter
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mancarijo_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		}, []string{"method", "route", "status"}),
		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mancarijo_remote_requests_total",
			Help: "Requests issued to the remote REST API, by collection and outcome",
		}, []string{"collection", "method", "outcome"}),
		RemoteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mancarijo_remote_request_duration_seconds",
			Help:    "Latency of requests to the remote REST API",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "method"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mancarijo_workflow_transitions_total",
			Help: "Application workflow transitions, by kind and outcome",
		}, []string{"kind", "outcome"}),
		SessionSignIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mancarijo_session_sign_ins_total",
			Help: "Sign-ins by storage tier",
		}, []string{"tier"}),
		DivergedEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "mancarijo_workflow_diverged_total",
			Help: "Transitions that wrote the seeker record but not the job record",
		}),
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
}

func (m *Metrics) ObserveRemote(collection, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RemoteRequests.WithLabelValues(collection, method, outcome).Inc()
	m.RemoteDuration.WithLabelValues(collection, method).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTransition(kind, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveSignIn(tier string) {
	if m == nil {
		return
	}
	m.SessionSignIns.WithLabelValues(tier).Inc()
}

func (m *Metrics) IncrementDiverged() {
	if m == nil {
		return
	}
	m.DivergedEntries.Inc()
}
