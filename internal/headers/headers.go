package headers

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	maxLineSize    = 8192 // 8KB per request, status or header line
	maxHeaderLines = 1000
)

var (
	ErrMalformedHeader = errors.New("malformed header")
	ErrLineTooLong     = errors.New("line too long")
	ErrTooManyHeaders  = errors.New("too many header lines")
)

type field struct {
	name  string
	value string
}

// Headers maps header names to a single value. Lookups ignore case; the name
// is kept with the casing it was last set with so it serializes unchanged.
type Headers struct {
	fields map[string]field
}

func NewHeaders() *Headers {
	return &Headers{
		fields: make(map[string]field),
	}
}

// Get returns the value for a header
func (h *Headers) Get(key string) (string, bool) {
	f, ok := h.fields[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return f.value, true
}

// Has reports whether the header is set
func (h *Headers) Has(key string) bool {
	_, ok := h.fields[strings.ToLower(key)]
	return ok
}

// Set replaces the value (and the stored casing) for a header
func (h *Headers) Set(key, value string) {
	h.fields[strings.ToLower(key)] = field{name: key, value: value}
}

// Del removes a header
func (h *Headers) Del(key string) {
	delete(h.fields, strings.ToLower(key))
}

func (h *Headers) Len() int {
	return len(h.fields)
}

// Keys returns the header names, as stored, in sorted order.
func (h *Headers) Keys() []string {
	keys := make([]string, 0, len(h.fields))
	for _, f := range h.fields {
		keys = append(keys, f.name)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	c := NewHeaders()
	for k, f := range h.fields {
		c.fields[k] = f
	}
	return c
}

// WriteTo writes every header as "Name: value\r\n" in Keys order.
func (h *Headers) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, name := range h.Keys() {
		value, _ := h.Get(name)
		n, err := fmt.Fprintf(w, "%s: %s\r\n", name, value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ParseLine splits one header line on its first colon.
func ParseLine(line string) (string, string, error) {
	colonIdx := strings.IndexByte(line, ':')
	if colonIdx == -1 {
		return "", "", fmt.Errorf("%w: no colon in %q", ErrMalformedHeader, line)
	}

	name := strings.TrimSpace(line[:colonIdx])
	if name == "" {
		return "", "", fmt.Errorf("%w: empty name", ErrMalformedHeader)
	}

	return name, strings.TrimSpace(line[colonIdx+1:]), nil
}

// Read consumes header lines up to and including the empty line that ends
// the block. Later duplicates overwrite earlier ones.
func Read(br *bufio.Reader) (*Headers, error) {
	h := NewHeaders()

	for lines := 0; ; lines++ {
		if lines >= maxHeaderLines {
			return nil, ErrTooManyHeaders
		}

		line, err := ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		if line == "" {
			return h, nil
		}

		name, value, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		h.Set(name, value)
	}
}

// ReadLine returns the next line without its CRLF (or bare LF) terminator.
// io.EOF is only returned when no byte of the line was read; a partial line
// cut off by EOF yields io.ErrUnexpectedEOF.
func ReadLine(br *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if len(line)+len(chunk) > maxLineSize {
			return "", ErrLineTooLong
		}
		line = append(line, chunk...)

		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line), nil
}
