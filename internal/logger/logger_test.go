package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "info")
	require.NoError(t, err)

	l.Info("request handled", F("method", "GET"), F("status", 200))

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="request handled"`)
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "status=200")
}

func TestDefaultLoggerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "warn")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Error("shown", F("error", errors.New("boom")))
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "boom")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "loud")
	require.Error(t, err)

	// Still usable, at info level
	l.Info("fallback")
	assert.Contains(t, buf.String(), "fallback")
}

func TestSanitizeValueTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := sanitizeValue(long).(string)

	assert.True(t, strings.HasSuffix(got, "...[truncated]"))
	assert.Len(t, got, 100+len("...[truncated]"))
	assert.Equal(t, 42, sanitizeValue(42))
}

func TestNullLogger(t *testing.T) {
	var l Logger = NullLogger{}
	l.Info("nothing")
	l.Error("nothing", F("k", "v"))
}
