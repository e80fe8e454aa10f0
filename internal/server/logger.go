package server

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a structured logger writing to w. With pretty set the
// output is the human readable console format, otherwise JSON lines.
func NewLogger(w io.Writer, debug, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05.000"}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NullLogger discards all logs (for testing)
func NullLogger() zerolog.Logger {
	return zerolog.Nop()
}

// LogStats writes a snapshot at info level.
func LogStats(log zerolog.Logger, s MetricsSnapshot) {
	log.Info().
		Int64("requests_total", s.RequestsTotal).
		Int64("served", s.Served).
		Int64("bad_requests", s.BadRequests).
		Int64("not_found", s.NotFound).
		Int64("server_errors", s.ServerErrors).
		Int64("active_connections", s.ActiveConnections).
		Dur("avg_latency", s.AverageLatency.Round(time.Microsecond)).
		Dur("max_latency", s.MaxLatency.Round(time.Microsecond)).
		Msg("server stats")
}
