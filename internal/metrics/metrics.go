package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback paths.
const (
	PathQuestions = "questions"
	PathScoring   = "scoring"
	PathChat      = "chat"
)

// Self-check session events.
const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventAborted   = "aborted"
)

var (
	fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_fallback_total",
		Help: "Remote computations replaced by their local fallback.",
	}, []string{"path"})

	sessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_selfcheck_sessions_total",
		Help: "Self-check session lifecycle events.",
	}, []string{"event"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})
)

// Fallback records a local substitution for the given path.
func Fallback(path string) {
	fallbacks.WithLabelValues(path).Inc()
}

// Session records a self-check lifecycle event.
func Session(event string) {
	sessions.WithLabelValues(event).Inc()
}

// Instrument wraps a handler and counts responses by status code.
func Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		httpRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
