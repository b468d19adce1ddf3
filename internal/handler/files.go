package handler

import (
	"fmt"
	"os"
	"strings"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
	"github.com/Brownie44l1/httpd/internal/router"
)

const (
	filesPrefix = "/files"
	octetStream = "application/octet-stream"
)

// Files serves /files/<name> out of directory.
//
// The file path is directory + the path after "/files", concatenated as-is:
// a directory of "/tmp/" and a path of "/files/a" give "/tmp//a". Nothing is
// normalized, so "../" in the path escapes directory unless strict is set,
// in which case any ".." segment is answered with 400.
//
// GET returns the file bytes (404 if unreadable). Every other method
// creates or truncates the file with the request body and answers 201.
// Concurrent writers to one path race; the last write wins.
func Files(directory string, strict bool) router.Handler {
	return func(req *request.Request) (*response.Response, error) {
		tail := strings.TrimPrefix(req.Path, filesPrefix)
		if strict && hasDotDot(tail) {
			return response.BadRequest(), nil
		}

		path := directory + tail

		if req.Method == "GET" {
			data, err := os.ReadFile(path)
			if err != nil {
				return response.NotFound(), nil
			}
			return response.Bytes(response.StatusOK, octetStream, data), nil
		}

		if err := os.WriteFile(path, req.Body, 0o666); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		return response.Empty(response.StatusCreated), nil
	}
}

func hasDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
