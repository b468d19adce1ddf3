package response

import (
	"fmt"
	"io"

	"github.com/Brownie44l1/httpd/internal/headers"
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP response to an io.Writer, enforcing
// status line → headers → body order.
type Writer struct {
	w        io.Writer
	state    writerState
	written  int64
	hadError bool
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes the HTTP status line
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	n, err := fmt.Fprintf(w.w, "HTTP/1.1 %d %s\r\n", code, StatusText(code))
	w.written += int64(n)
	if err != nil {
		w.hadError = true
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes all headers followed by the blank line
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	n, err := h.WriteTo(w.w)
	w.written += n
	if err != nil {
		w.hadError = true
		return err
	}

	m, err := io.WriteString(w.w, "\r\n")
	w.written += int64(m)
	if err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}

	if len(data) == 0 {
		w.state = stateBodyWritten
		return nil
	}

	n, err := w.w.Write(data)
	w.written += int64(n)
	if err != nil {
		w.hadError = true
		return err
	}

	w.state = stateBodyWritten
	return nil
}

func (w *Writer) HadError() bool {
	return w.hadError
}

// Written returns the number of bytes handed to the underlying writer.
func (w *Writer) Written() int64 {
	return w.written
}
