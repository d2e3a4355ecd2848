package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the process-wide zerolog Logger. Every event carries a
// service field so lines from the API and the seeder stay attributable once
// aggregated. APP_ENV=dev (or development) swaps the JSON output for a
// human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLoggerTo(os.Stdout, env)
}

func newLoggerTo(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "staynest").Logger()
}
