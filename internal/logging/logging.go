// Package logging builds the go-kit logger used by jsonfmt.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pavanmanishd/arenajson/internal/config"
)

// New returns a logger writing to w in the configured format, dropping
// messages below the configured level. When reg is not nil, every message
// that passes the filter is counted in log_messages_total by level.
//
// cfg is expected to be validated; unknown levels fall back to info.
func New(cfg config.LogConfig, w io.Writer, reg prometheus.Registerer) log.Logger {
	var logger log.Logger
	if cfg.Format == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	if reg != nil {
		logger = newCountingLogger(logger, reg)
	}
	logger = level.NewFilter(logger, levelOption(cfg.Level))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func levelOption(l string) level.Option {
	switch l {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

type countingLogger struct {
	next     log.Logger
	messages *prometheus.CounterVec
}

func newCountingLogger(next log.Logger, reg prometheus.Registerer) log.Logger {
	messages := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "log_messages_total",
		Help: "Total number of log messages.",
	}, []string{"level"})
	for _, v := range []level.Value{
		level.DebugValue(),
		level.InfoValue(),
		level.WarnValue(),
		level.ErrorValue(),
	} {
		messages.WithLabelValues(v.String())
	}
	return &countingLogger{next: next, messages: messages}
}

// Log passes the message on and counts it by its level.
func (l *countingLogger) Log(kv ...interface{}) error {
	err := l.next.Log(kv...)
	lvl := "unknown"
	for i := 1; i < len(kv); i += 2 {
		if v, ok := kv[i].(level.Value); ok {
			lvl = v.String()
			break
		}
	}
	l.messages.WithLabelValues(lvl).Inc()
	return err
}
