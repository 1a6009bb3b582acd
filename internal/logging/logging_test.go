package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "WARN")
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	logger.Warn().Str("key", "k").Msg("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["message"])
	require.Equal(t, "k", line["key"])
	require.Contains(t, line, "time")
}

func TestNewWithWriter_FallsBackToInfo(t *testing.T) {
	for _, lvl := range []string{"", "verbose"} {
		logger := NewWithWriter(&bytes.Buffer{}, lvl)
		require.Equal(t, zerolog.InfoLevel, logger.GetLevel(), lvl)
	}
}
