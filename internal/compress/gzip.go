// Package compress applies Content-Encoding to finished responses.
package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

const Gzip = "gzip"

// gzip writers carry sizeable internal state, so they are reused.
var writerPool = sync.Pool{
	New: func() interface{} {
		zw, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return zw
	},
}

// Transcode gzips resp in place when req advertises gzip. Content-Encoding
// is set even for an empty body, which stays empty.
func Transcode(req *request.Request, resp *response.Response) error {
	if !req.AcceptsEncoding(Gzip) {
		return nil
	}

	resp.Headers.Set("Content-Encoding", Gzip)
	if len(resp.Body) == 0 {
		return nil
	}

	compressed, err := GzipBytes(resp.Body)
	if err != nil {
		return err
	}
	resp.SetBody(compressed)
	return nil
}

// GzipBytes compresses data at the default level.
func GzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := writerPool.Get().(*gzip.Writer)
	defer writerPool.Put(zw)
	zw.Reset(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Gunzip decompresses a complete gzip stream.
func Gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
