package compress

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

func parse(t *testing.T, raw string) *request.Request {
	t.Helper()
	req, err := request.RequestFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return req
}

func TestTranscodeGzip(t *testing.T) {
	req := parse(t, "GET /echo/abc HTTP/1.1\r\nAccept-Encoding: gzip, deflate\r\nHost: x\r\n\r\n")
	resp := response.Text(response.StatusOK, "abc")

	require.NoError(t, Transcode(req, resp))

	assert.Equal(t, "gzip", resp.Header("Content-Encoding"))
	assert.Equal(t, "text/plain", resp.Header("Content-Type"))
	assert.NotEqual(t, "abc", string(resp.Body))
	assert.Equal(t, []byte{0x1f, 0x8b}, resp.Body[:2])

	plain, err := Gunzip(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(plain))
}

func TestTranscodeUpdatesContentLength(t *testing.T) {
	req := parse(t, "GET / HTTP/1.1\r\nAccept-Encoding: gzip\r\n\r\n")
	resp := response.Text(response.StatusOK, strings.Repeat("compress me ", 500))

	require.NoError(t, Transcode(req, resp))

	assert.Equal(t, resp.Header("Content-Length"), strconv.Itoa(len(resp.Body)))
	assert.Less(t, len(resp.Body), 500*len("compress me "))
}

func TestTranscodeEmptyBody(t *testing.T) {
	req := parse(t, "GET / HTTP/1.1\r\nAccept-Encoding: gzip\r\n\r\n")
	resp := response.Empty(response.StatusOK)

	require.NoError(t, Transcode(req, resp))

	assert.Equal(t, "gzip", resp.Header("Content-Encoding"))
	assert.Equal(t, "0", resp.Header("Content-Length"))
	assert.Empty(t, resp.Body)
}

func TestTranscodeNotAdvertised(t *testing.T) {
	for _, raw := range []string{
		"GET / HTTP/1.1\r\n\r\n",
		"GET / HTTP/1.1\r\nAccept-Encoding: deflate, br\r\n\r\n",
		"GET / HTTP/1.1\r\nAccept-Encoding: notgzip\r\n\r\n",
	} {
		req := parse(t, raw)
		resp := response.Text(response.StatusOK, "abc")

		require.NoError(t, Transcode(req, resp))
		assert.False(t, resp.Headers.Has("Content-Encoding"), raw)
		assert.Equal(t, "abc", string(resp.Body))
	}
}

func TestGzipBytesReusesWriters(t *testing.T) {
	for i := 0; i < 10; i++ {
		in := strings.Repeat("x", i*100)
		out, err := GzipBytes([]byte(in))
		require.NoError(t, err)

		plain, err := Gunzip(out)
		require.NoError(t, err)
		assert.Equal(t, in, string(plain))
	}
}

func TestGunzipInvalid(t *testing.T) {
	_, err := Gunzip([]byte("not gzip"))
	assert.Error(t, err)
}
