package logrus

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Info("Fetched news", map[string]interface{}{"subject": "Taylor Swift", "kept": 3})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Fetched news", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "Taylor Swift", lines[0]["subject"])
	assert.Equal(t, float64(3), lines[0]["kept"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "warn"})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)
	logger.Error("shown too", map[string]interface{}{"error": "boom"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warning", lines[0]["level"])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "chatty"})

	logger.Debug("hidden", nil)
	logger.Info("shown", nil)

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Format: "text"})

	logger.Info("plain", map[string]interface{}{"k": "v"})

	out := buf.String()
	assert.Contains(t, out, "msg=plain")
	assert.Contains(t, out, "k=v")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf}).With(map[string]interface{}{"component": "refresh"})

	logger.Info("tick", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "refresh", lines[0]["component"])
}
