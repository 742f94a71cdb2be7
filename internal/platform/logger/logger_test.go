package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, sync, err := New(Config{Level: "warn", Format: FormatJSON}, &buf)
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("failed to fetch time series", "symbol", "META", "status", 502)
	require.NoError(t, sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info entry must be filtered by level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "failed to fetch time series", entry["msg"])
	assert.Equal(t, "META", entry["symbol"])
	assert.EqualValues(t, 502, entry["status"])
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, _, err := New(Config{Level: "debug", Format: FormatConsole}, &buf)
	require.NoError(t, err)

	l.Debug("analysis finished", "symbols", 2)
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "analysis finished")
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = New(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{Level: "debug", Format: "console"}, cfg)
}
