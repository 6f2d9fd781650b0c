package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("production writes json", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("LOG_LEVEL", "warn")
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hidden")
		logger.Warn("shown", "action", "get_summary")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "get_summary", rec["action"])
	})
	t.Run("development writes text", func(t *testing.T) {
		t.Setenv("GO_ENV", "")
		t.Setenv("LOG_LEVEL", "DEBUG")
		var buf bytes.Buffer
		NewLogger(&buf).Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
}
