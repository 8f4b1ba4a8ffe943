package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNew_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New("dev", &buf)
	log.Debug(context.Background(), "dbg", "a", 1)
	log.Info(context.Background(), "inf", "b", "two")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "dbg", lines[0]["msg"])
	assert.EqualValues(t, 1, lines[0]["a"])
	assert.Equal(t, "two", lines[1]["b"])
}

func TestNew_ProdSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", &buf)
	log.Debug(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", &buf).With("component", "auth")
	log.Error(context.Background(), "boom", "err", "db down")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "auth", lines[0]["component"])
	assert.Equal(t, "db down", lines[0]["err"])
}
