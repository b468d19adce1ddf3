package headers

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestParseLine(t *testing.T) {
	// Test: Valid single header
	name, value, err := ParseLine("Host: localhost:4221")
	require.NoError(t, err)
	assert.Equal(t, "Host", name)
	assert.Equal(t, "localhost:4221", value)

	// Test: Extra whitespace around name and value is stripped
	name, value, err = ParseLine("  Host :   localhost:4221   ")
	require.NoError(t, err)
	assert.Equal(t, "Host", name)
	assert.Equal(t, "localhost:4221", value)

	// Test: Only the first colon delimits
	name, value, err = ParseLine("X-Time: 12:30:00")
	require.NoError(t, err)
	assert.Equal(t, "X-Time", name)
	assert.Equal(t, "12:30:00", value)

	// Test: Empty header value (allowed)
	name, value, err = ParseLine("X-Empty:")
	require.NoError(t, err)
	assert.Equal(t, "X-Empty", name)
	assert.Equal(t, "", value)

	// Test: No colon in header
	_, _, err = ParseLine("InvalidHeader")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	// Test: Empty name
	_, _, err = ParseLine(" : value")
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestHeadersCaseInsensitive(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "application/json")

	val, ok := h.Get("content-type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", val)

	val, ok = h.Get("CONTENT-TYPE")
	assert.True(t, ok)
	assert.Equal(t, "application/json", val)

	// Stored casing is what serializes
	assert.Equal(t, []string{"Content-Type"}, h.Keys())
}

func TestHeadersSetOverwrites(t *testing.T) {
	h := NewHeaders()
	h.Set("X-Custom", "value1")
	h.Set("x-custom", "value2")

	val, _ := h.Get("X-Custom")
	assert.Equal(t, "value2", val)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []string{"x-custom"}, h.Keys())

	h.Del("X-CUSTOM")
	assert.False(t, h.Has("x-custom"))

	// Get on non-existent header
	val, ok := h.Get("non-existent")
	assert.False(t, ok)
	assert.Equal(t, "", val)
}

func TestHeadersClone(t *testing.T) {
	h := NewHeaders()
	h.Set("A", "1")
	c := h.Clone()
	c.Set("A", "2")

	val, _ := h.Get("A")
	assert.Equal(t, "1", val)
}

func TestHeadersWriteTo(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Set("Content-Length", "3")

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, "Content-Length: 3\r\nContent-Type: text/plain\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestRead(t *testing.T) {
	br := reader("Host: example.com\r\nContent-Type: text/html\r\nContent-Length: 42\r\n\r\nbody")
	h, err := Read(br)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Len())

	val, _ := h.Get("host")
	assert.Equal(t, "example.com", val)
	val, _ = h.Get("content-length")
	assert.Equal(t, "42", val)

	// Body bytes are left in the reader
	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, "body", string(rest))
}

func TestReadDuplicateLastWins(t *testing.T) {
	h, err := Read(reader("Set-Cookie: a=1\r\nSet-Cookie: b=2\r\n\r\n"))
	require.NoError(t, err)

	val, _ := h.Get("Set-Cookie")
	assert.Equal(t, "b=2", val)
}

func TestReadEmptyBlock(t *testing.T) {
	h, err := Read(reader("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(reader("Host: x\r\nBroken\r\n\r\n"))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestReadTruncated(t *testing.T) {
	_, err := Read(reader("Host: x\r\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Read(reader("Host: x"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadTooManyHeaders(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < maxHeaderLines+1; i++ {
		sb.WriteString("X-H: v\r\n")
	}
	sb.WriteString("\r\n")

	_, err := Read(reader(sb.String()))
	assert.ErrorIs(t, err, ErrTooManyHeaders)
}

func TestReadLine(t *testing.T) {
	br := reader("first\r\nsecond\nthird")

	line, err := ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = ReadLine(br)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadLine(reader(""))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLineLongerThanBuffer(t *testing.T) {
	long := strings.Repeat("a", 100)
	br := bufio.NewReaderSize(strings.NewReader(long+"\r\n"), 16)

	line, err := ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, long, line)
}

func TestReadLineTooLong(t *testing.T) {
	_, err := ReadLine(reader(strings.Repeat("a", maxLineSize+1) + "\r\n"))
	assert.ErrorIs(t, err, ErrLineTooLong)
}
