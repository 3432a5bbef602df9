package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoobzio/vista"
)

func newLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "console", "pretty":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format %q (console|json)", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// logMetrics reports orchestrator events as debug logs.
type logMetrics struct {
	vista.NoOpMetricsProvider
	log zerolog.Logger
}

func newLogMetrics(log zerolog.Logger) *logMetrics {
	return &logMetrics{log: log.With().Str("component", "metrics").Logger()}
}

func (m *logMetrics) OnLifecycleChange(from, to vista.Lifecycle) {
	m.log.Debug().Stringer("from", from).Stringer("to", to).Msg("lifecycle")
}

func (m *logMetrics) OnFetchCompleted(pipeline string, d time.Duration) {
	m.log.Debug().Str("pipeline", pipeline).Dur("duration", d).Msg("fetch completed")
}

func (m *logMetrics) OnFetchCancelled(pipeline string) {
	m.log.Debug().Str("pipeline", pipeline).Msg("fetch cancelled")
}

func (m *logMetrics) OnPublishFailure(slot string) {
	m.log.Warn().Str("slot", slot).Msg("publish failed")
}
