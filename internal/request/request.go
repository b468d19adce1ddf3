package request

import (
	"strconv"
	"strings"

	"github.com/Brownie44l1/httpd/internal/headers"
)

// Request is one parsed HTTP/1.1 message.
type Request struct {
	Method  string
	Path    string // raw request target, not decoded
	Version string // read and otherwise ignored
	Headers *headers.Headers
	Body    []byte
}

// Header returns a header value, or "" when absent.
func (r *Request) Header(name string) string {
	v, _ := r.Headers.Get(name)
	return v
}

// ContentLength returns the Content-Length header value, or -1 if not present
func (r *Request) ContentLength() int64 {
	cl, ok := r.Headers.Get("Content-Length")
	if !ok {
		return -1
	}

	length, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || length < 0 {
		return -1
	}
	return length
}

// WantsClose reports whether the client sent "Connection: close".
func (r *Request) WantsClose() bool {
	return HasToken(r.Header("Connection"), "close")
}

// AcceptsEncoding reports whether Accept-Encoding lists the given coding.
func (r *Request) AcceptsEncoding(coding string) bool {
	return HasToken(r.Header("Accept-Encoding"), coding)
}

// HasToken reports whether a comma and/or space separated header value
// contains token, ignoring case and any ";param" suffix.
func HasToken(value, token string) bool {
	fields := strings.FieldsFunc(value, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t'
	})
	for _, f := range fields {
		if i := strings.IndexByte(f, ';'); i != -1 {
			f = f[:i]
		}
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
