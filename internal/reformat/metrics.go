package reformat

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeExhausted = "exhausted"
	outcomeError     = "error"
)

type metrics struct {
	jobs        *prometheus.CounterVec
	inputBytes  prometheus.Counter
	outputBytes prometheus.Counter
	duration    prometheus.Histogram
	arenaUsed   prometheus.Histogram
}

// newMetrics registers the job metrics on reg. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		jobs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenajson",
			Subsystem: "reformat",
			Name:      "jobs_total",
			Help:      "Total number of documents processed, by outcome.",
		}, []string{"outcome"}),
		inputBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "arenajson",
			Subsystem: "reformat",
			Name:      "input_bytes_total",
			Help:      "Total number of input bytes read.",
		}),
		outputBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "arenajson",
			Subsystem: "reformat",
			Name:      "output_bytes_total",
			Help:      "Total number of formatted bytes produced.",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "arenajson",
			Subsystem: "reformat",
			Name:      "duration_seconds",
			Help:      "Time spent reading, parsing and formatting one document.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		arenaUsed: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "arenajson",
			Subsystem: "reformat",
			Name:      "arena_used_bytes",
			Help:      "Arena bytes in use at the end of a job.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	for _, outcome := range []string{outcomeOK, outcomeInvalid, outcomeExhausted, outcomeError} {
		m.jobs.WithLabelValues(outcome)
	}
	return m
}

func (m *metrics) observe(res Result) {
	m.jobs.WithLabelValues(outcome(res.Err)).Inc()
	m.inputBytes.Add(float64(res.InputBytes))
	m.outputBytes.Add(float64(res.OutputBytes))
	if res.Duration > 0 {
		m.duration.Observe(res.Duration.Seconds())
		m.arenaUsed.Observe(float64(res.ArenaUsed))
	}
}

func outcome(err error) string {
	switch errors.Cause(err) {
	case nil:
		return outcomeOK
	case ErrInvalidJSON:
		return outcomeInvalid
	case ErrArenaExhausted:
		return outcomeExhausted
	default:
		return outcomeError
	}
}
