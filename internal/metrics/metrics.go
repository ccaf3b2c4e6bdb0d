package metrics

import (
	"errors"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "shot_visualizer"

// Outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	comparisons      *prometheus.CounterVec
	players          *prometheus.CounterVec
	renderedShots    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates the collectors and registers them with registry
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Number of upstream API requests",
		}, []string{"provider", "call", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API request duration",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"provider", "call"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "compare",
			Name:      "comparisons_total",
			Help:      "Number of two-player comparisons by outcome",
		}, []string{"outcome"}),
		players: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "compare",
			Name:      "player_pipelines_total",
			Help:      "Number of per-player pipelines by result",
		}, []string{"provider", "result"}),
		renderedShots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "shots_total",
			Help:      "Number of shots drawn onto charts",
		}, []string{"mode"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of incoming HTTP requests",
		}, []string{"route", "method", "status"}),
	}
	registry.MustRegister(
		m.upstreamRequests,
		m.upstreamDuration,
		m.comparisons,
		m.players,
		m.renderedShots,
		m.httpRequests,
	)
	return m
}

// ObserveUpstream records one upstream call
func (m *Metrics) ObserveUpstream(provider, call string, err error, took time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(provider, call, upstreamOutcome(err)).Inc()
	m.upstreamDuration.WithLabelValues(provider, call).Observe(took.Seconds())
}

func upstreamOutcome(err error) string {
	var fetchErr *models.FetchError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &fetchErr) && fetchErr.StatusCode != 0:
		return "status_error"
	default:
		return "transport_error"
	}
}

// ObservePlayer records the result of one per-player pipeline. Result is
// "ok", "empty" or an error kind.
func (m *Metrics) ObservePlayer(provider, result string) {
	if m == nil {
		return
	}
	m.players.WithLabelValues(provider, result).Inc()
}

// ObserveComparison records one comparison by outcome
func (m *Metrics) ObserveComparison(outcome string) {
	if m == nil {
		return
	}
	m.comparisons.WithLabelValues(outcome).Inc()
}

// AddRenderedShots counts shots drawn in mode
func (m *Metrics) AddRenderedShots(mode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.renderedShots.WithLabelValues(mode).Add(float64(n))
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(route, method, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
}
