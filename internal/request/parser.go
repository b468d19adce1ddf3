package request

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Brownie44l1/httpd/internal/headers"
)

// Bodies are read incrementally so a large Content-Length only costs
// memory once the bytes actually arrive.
const initialBodyBuffer = 64 << 10

var (
	// ErrConnectionClosed means the peer closed the connection before
	// sending any byte of a new request. It is a normal way for a
	// persistent connection to end.
	ErrConnectionClosed     = errors.New("connection closed by peer")
	ErrInvalidContentLength = errors.New("invalid Content-Length")
)

// ReadError wraps transport failures (I/O errors, EOF in the middle of a
// message) so callers can tell them apart from protocol errors.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsProtocolError reports whether err describes a malformed request
// rather than a transport failure or a closed connection.
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrMalformedRequestLine) ||
		errors.Is(err, ErrInvalidContentLength) ||
		errors.Is(err, headers.ErrMalformedHeader) ||
		errors.Is(err, headers.ErrLineTooLong) ||
		errors.Is(err, headers.ErrTooManyHeaders)
}

// RequestFromReader parses a single request from r. Callers that keep
// reading from the same stream should use ParseRequest with their own
// bufio.Reader so no buffered bytes are lost.
func RequestFromReader(r io.Reader) (*Request, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return ParseRequest(br)
}

// ParseRequest frames one request: request line, header block and a body
// sized by Content-Length.
func ParseRequest(br *bufio.Reader) (*Request, error) {
	line, err := readRequestLine(br)
	if err != nil {
		return nil, err
	}

	method, path, version, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	h, err := headers.Read(br)
	if err != nil {
		return nil, wrapReadErr(err)
	}

	req := &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: h,
	}

	if err := readBody(br, req); err != nil {
		return nil, err
	}
	return req, nil
}

// readRequestLine skips empty lines preceding the request line.
func readRequestLine(br *bufio.Reader) (string, error) {
	for {
		line, err := headers.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrConnectionClosed
			}
			return "", wrapReadErr(err)
		}
		if line != "" {
			return line, nil
		}
	}
}

func readBody(br *bufio.Reader, req *Request) error {
	cl, ok := req.Headers.Get("Content-Length")
	if !ok {
		req.Body = []byte{}
		return nil
	}

	length, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || length < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidContentLength, cl)
	}

	var body bytes.Buffer
	body.Grow(int(min(length, initialBodyBuffer)))

	n, err := io.CopyN(&body, br, length)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &ReadError{Err: fmt.Errorf("body: got %d of %d bytes: %w", n, length, err)}
	}

	req.Body = body.Bytes()
	return nil
}

func wrapReadErr(err error) error {
	if IsProtocolError(err) {
		return err
	}
	return &ReadError{Err: err}
}
