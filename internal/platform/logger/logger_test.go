package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json output honours level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "warn", false)

		log.Info("dropped")
		log.Warn("kept", "key", "value")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "kept", line["msg"])
		assert.Equal(t, "value", line["key"])
	})

	t.Run("text output in development", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "debug", true).Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}
