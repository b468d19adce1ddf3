package request

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRequestLine = errors.New("malformed request line")

// parseRequestLine parses: METHOD SP TARGET [SP VERSION]
// The version is optional since the server never acts on it.
func parseRequestLine(line string) (string, string, string, error) {
	parts := strings.Fields(line)

	switch len(parts) {
	case 0:
		return "", "", "", fmt.Errorf("%w: missing method", ErrMalformedRequestLine)
	case 1:
		return "", "", "", fmt.Errorf("%w: missing request target", ErrMalformedRequestLine)
	case 2:
		return parts[0], parts[1], "", nil
	case 3:
		return parts[0], parts[1], parts[2], nil
	default:
		return "", "", "", fmt.Errorf("%w: %d fields", ErrMalformedRequestLine, len(parts))
	}
}
