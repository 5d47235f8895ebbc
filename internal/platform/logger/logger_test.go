package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surety/internal/platform/config"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json handler filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)
		log.Info("hidden")
		log.Warn("shown", "airline", "0xabc")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "surety", entry["service"])
		assert.Equal(t, "0xabc", entry["airline"])
	})

	t.Run("text handler", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: "debug", Format: "text"}, &buf)
		log.Debug("trace")
		assert.Contains(t, buf.String(), "msg=trace")
	})
}
