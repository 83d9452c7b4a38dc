// Package metrics exposes Prometheus counters for votes, acceptances and
// form submissions. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stackit"

type Metrics struct {
	registry *prometheus.Registry

	votes          *prometheus.CounterVec
	accepts        *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
	drafts         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote button clicks applied, by target type and resulting choice.",
		}, []string{"target", "choice"}),
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answer_accept_toggles_total",
			Help:      "Accept button clicks, by whether the answer ended up accepted.",
		}, []string{"accepted"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Form submissions by form kind and outcome.",
		}, []string{"form", "outcome"}),
		submitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time spent in the submitting state.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"form"}),
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_operations_total",
			Help:      "Draft saves, loads and discards.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.votes,
		m.accepts,
		m.submissions,
		m.submitDuration,
		m.drafts,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Vote(target, choice string) {
	if m == nil {
		return
	}
	m.votes.WithLabelValues(target, choice).Inc()
}

func (m *Metrics) Accept(accepted bool) {
	if m == nil {
		return
	}
	label := "false"
	if accepted {
		label = "true"
	}
	m.accepts.WithLabelValues(label).Inc()
}

// Submission records one submit attempt. outcome is one of success,
// failure, invalid or busy.
func (m *Metrics) Submission(form, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
	if outcome == "success" || outcome == "failure" {
		m.submitDuration.WithLabelValues(form).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) Draft(op string) {
	if m == nil {
		return
	}
	m.drafts.WithLabelValues(op).Inc()
}
