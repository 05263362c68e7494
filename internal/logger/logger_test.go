package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStoresStampedLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	l.Log("hello")
	l.Warn().Int("slot", 3).Msg("careful")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "INFO hello"))
	assert.True(t, strings.HasSuffix(lines[1], "WARN careful"))
	assert.Equal(t, lines[1], l.Last())
	assert.Contains(t, buf.String(), `"slot":3`)
}

func TestLevelFiltersLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)

	l.Debug().Msg("hidden")
	l.Info().Msg("hidden too")
	l.Error().Msg("shown")

	assert.Len(t, l.Lines(), 1)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, zerolog.InfoLevel)
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestLinesAreCapped(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, zerolog.InfoLevel)
	for i := 0; i < maxLines+25; i++ {
		l.Log(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	assert.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], fmt.Sprintf("line %d", maxLines+24)))
	assert.True(t, strings.HasSuffix(lines[0], "line 25"))
}

func TestLastEmpty(t *testing.T) {
	assert.Equal(t, "", NewWithWriter(&bytes.Buffer{}, zerolog.InfoLevel).Last())
}

func TestNewAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orbit.txt")
	l, err := New(path, zerolog.InfoLevel)
	require.NoError(t, err)
	l.Log("to disk")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "to disk", event["message"])
	assert.Equal(t, "info", event["level"])
	assert.Contains(t, event, "time")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}
