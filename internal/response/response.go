package response

import (
	"bytes"
	"io"
	"strconv"

	"github.com/Brownie44l1/httpd/internal/headers"
)

const defaultContentType = "text/plain"

// Response is one HTTP message to be sent.
type Response struct {
	StatusCode StatusCode
	Headers    *headers.Headers
	Body       []byte
}

// New builds a response whose Content-Length always matches body. A
// non-empty body without a Content-Type is labelled text/plain.
func New(code StatusCode, h *headers.Headers, body []byte) *Response {
	if h == nil {
		h = headers.NewHeaders()
	}
	if body == nil {
		body = []byte{}
	}

	if len(body) > 0 && !h.Has("Content-Type") {
		h.Set("Content-Type", defaultContentType)
	}

	r := &Response{
		StatusCode: code,
		Headers:    h,
	}
	r.SetBody(body)
	return r
}

// SetBody replaces the body and keeps Content-Length in step.
func (r *Response) SetBody(body []byte) {
	r.Body = body
	r.Headers.Set("Content-Length", strconv.Itoa(len(body)))
}

// Header returns a header value, or "" when absent.
func (r *Response) Header(name string) string {
	v, _ := r.Headers.Get(name)
	return v
}

// WriteTo serializes the response to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	rw := NewWriter(w)

	if err := rw.WriteStatusLine(r.StatusCode); err != nil {
		return rw.Written(), err
	}
	if err := rw.WriteHeaders(r.Headers); err != nil {
		return rw.Written(), err
	}
	err := rw.WriteBody(r.Body)
	return rw.Written(), err
}

// Format returns the wire form of the response.
func (r *Response) Format() []byte {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.Bytes()
}
