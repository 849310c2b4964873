package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "production", "debug")

	logger.Debug().Str("title", "Loft Coffee").Msg("site generated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "site generated", line["message"])
	assert.Equal(t, "Loft Coffee", line["title"])
	assert.Equal(t, "site-designer", line["service"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "Empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "Unknown defaults to info", level: "chatty", want: zerolog.InfoLevel},
		{name: "Case and spaces ignored", level: " WARN ", want: zerolog.WarnLevel},
		{name: "Debug", level: "debug", want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, "production", tt.level)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewWithWriter_ConsoleOutsideProduction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "development", "info")

	logger.Info().Msg("Starting API server")
	logger.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "Starting API server")
	assert.Contains(t, out, "service=site-designer")
	assert.NotContains(t, out, "hidden")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewWithWriter_SetsContextDefault(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "production", "info")
	t.Cleanup(func() { zerolog.DefaultContextLogger = nil })

	require.NotNil(t, zerolog.DefaultContextLogger)
	zerolog.DefaultContextLogger.Info().Msg("from default")
	assert.Contains(t, buf.String(), "from default")
}
