package metrics

import (
	"patternquiz/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for quiz activity
type Metrics struct {
	sessionsStarted   prometheus.Counter
	answersRecorded   prometheus.Counter
	completions       *prometheus.CounterVec
	resolverFallbacks *prometheus.CounterVec
}

// MustNewMetrics registers the collectors with reg. Registration errors panic,
// so tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "patternquiz",
			Subsystem: "sessions",
			Name:      "started_total",
			Help:      "Quiz sessions started.",
		}),
		answersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "patternquiz",
			Subsystem: "sessions",
			Name:      "answers_total",
			Help:      "Answers recorded, including changed answers.",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternquiz",
			Subsystem: "sessions",
			Name:      "completed_total",
			Help:      "Completed quizzes by resolved driver and pattern.",
		}, []string{"driver", "pattern"}),
		resolverFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patternquiz",
			Subsystem: "resolver",
			Name:      "fallbacks_total",
			Help:      "Pattern resolutions that had no rule for the dominant driver.",
		}, []string{"driver"}),
	}
	reg.MustRegister(m.sessionsStarted, m.answersRecorded, m.completions, m.resolverFallbacks)
	return m
}

func (m *Metrics) SessionStarted() { m.sessionsStarted.Inc() }

func (m *Metrics) AnswerRecorded() { m.answersRecorded.Inc() }

func (m *Metrics) Completed(result model.Result) {
	m.completions.WithLabelValues(string(result.DominantDriver), string(result.DominantPattern)).Inc()
}

// RecordFallback implements quiz.FallbackRecorder
func (m *Metrics) RecordFallback(driver model.Driver) {
	m.resolverFallbacks.WithLabelValues(string(driver)).Inc()
}
