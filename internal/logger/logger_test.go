package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init("info", false)

	Infof("房间 %s 已创建", "123456")
	Errorf("boom: %d", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "房间 123456 已创建", entry["message"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "error", entry["level"])
}

func TestLogger_LogPanicIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init("info", false)

	LogPanic("oops")
	assert.Contains(t, buf.String(), "[PANIC] oops")
	assert.Contains(t, buf.String(), "stack")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init("info", false)

	l := With("room", "r1")
	l.Info().Msg("hi")
	assert.Contains(t, buf.String(), `"room":"r1"`)
}
