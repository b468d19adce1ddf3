package response

import "github.com/Brownie44l1/httpd/internal/headers"

// Empty returns a response with no body
func Empty(code StatusCode) *Response {
	return New(code, nil, nil)
}

// Text returns a text/plain response
func Text(code StatusCode, body string) *Response {
	return New(code, nil, []byte(body))
}

// Bytes returns a response with arbitrary byte content
func Bytes(code StatusCode, contentType string, data []byte) *Response {
	h := headers.NewHeaders()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return New(code, h, data)
}

func NotFound() *Response {
	return Empty(StatusNotFound)
}

func BadRequest() *Response {
	return Empty(StatusBadRequest)
}
