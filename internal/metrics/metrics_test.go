package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Vote("question", "up")
	m.Vote("question", "up")
	m.Vote("answer", "none")
	m.Accept(true)
	m.Submission("answer", "success", 10*time.Millisecond)
	m.Submission("answer", "invalid", 0)
	m.Draft("save")

	assert.InDelta(t, 2, testutil.ToFloat64(m.votes.WithLabelValues("question", "up")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.votes.WithLabelValues("answer", "none")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.accepts.WithLabelValues("true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.submissions.WithLabelValues("answer", "invalid")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.submitDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Vote("question", "up")
		m.Accept(false)
		m.Submission("question", "busy", 0)
		m.Draft("load")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Vote("answer", "down")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stackit_votes_total{choice="down",target="answer"} 1`)
}
