package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger. Production writes JSON lines; anything else gets
// the human-readable console writer.
func New(appEnv, level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, appEnv, level)
}

func NewWithWriter(w io.Writer, appEnv, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if appEnv != "production" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stdout}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "site-designer").Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
