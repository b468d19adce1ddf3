package response

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Brownie44l1/httpd/internal/headers"
)

var ErrMalformedStatusLine = errors.New("malformed status line")

// Read parses one serialized response from br: status line, header block
// and a Content-Length sized body. Headers are taken as sent; New's
// normalization is not applied.
func Read(br *bufio.Reader) (*Response, error) {
	line, err := headers.ReadLine(br)
	if err != nil {
		return nil, err
	}

	code, err := parseStatusLine(line)
	if err != nil {
		return nil, err
	}

	h, err := headers.Read(br)
	if err != nil {
		return nil, err
	}

	body := []byte{}
	if cl, ok := h.Get("Content-Length"); ok {
		length, err := strconv.Atoi(cl)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("invalid Content-Length %q", cl)
		}
		body = make([]byte, length)
		if _, err := io.ReadFull(br, body); err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
	}

	return &Response{
		StatusCode: code,
		Headers:    h,
		Body:       body,
	}, nil
}

// parseStatusLine parses: HTTP-VERSION SP CODE SP REASON
func parseStatusLine(line string) (StatusCode, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return 0, fmt.Errorf("%w: %q", ErrMalformedStatusLine, line)
	}

	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 100 || code > 999 {
		return 0, fmt.Errorf("%w: bad code %q", ErrMalformedStatusLine, parts[1])
	}
	return StatusCode(code), nil
}
