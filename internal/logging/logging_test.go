package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	log.Debug().Str("subpackage", "python3-six").Msg("Listing files")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "python3-six", entry["subpackage"])
	assert.Equal(t, "Listing files", entry["message"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", FormatAuto)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", FormatConsole)
	require.NoError(t, err)

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatJSON)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"trace", zerolog.TraceLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
