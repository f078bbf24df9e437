package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		level     string
		want      zerolog.Level
	}{
		{0, "", zerolog.WarnLevel},
		{1, "", zerolog.InfoLevel},
		{2, "", zerolog.DebugLevel},
		{5, "", zerolog.TraceLevel},
		{0, "error", zerolog.ErrorLevel},
		{3, "INFO", zerolog.InfoLevel},
		{1, "bogus", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		l := Setup(&buf, tc.verbosity, tc.level)
		assert.Equal(t, tc.want, l.GetLevel(), "verbosity=%d level=%q", tc.verbosity, tc.level)
	}
}

func TestSetupWritesWarnings(t *testing.T) {
	var buf bytes.Buffer
	l := Component(Setup(&buf, 0, ""), "render")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "component=render")
}
