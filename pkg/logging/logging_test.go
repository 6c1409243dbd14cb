package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: " WARN ", want: slog.LevelWarn},
		{value: "warning", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "info", want: slog.LevelInfo},
		{value: "", want: slog.LevelInfo},
		{value: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.value))
		})
	}
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrintf(NewLogger(&buf, slog.LevelInfo))
	p.Debugf("hidden %d", 1)
	p.Infof("created comment %d", 42)
	p.Warningf("slow %s", "api")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "created comment 42")
	assert.Contains(t, out, "slow api")
}
