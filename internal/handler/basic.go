// Package handler holds the endpoint handlers. Each one is a pure mapping
// from a parsed request to a response value.
package handler

import (
	"strings"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

// Home answers 200 with an empty body.
func Home(*request.Request) (*response.Response, error) {
	return response.Empty(response.StatusOK), nil
}

// Echo answers with the last "/"-separated segment of the path.
func Echo(req *request.Request) (*response.Response, error) {
	tail := req.Path[strings.LastIndexByte(req.Path, '/')+1:]
	return response.Text(response.StatusOK, tail), nil
}

// UserAgent reflects the User-Agent header, or answers 400 without one.
func UserAgent(req *request.Request) (*response.Response, error) {
	ua, ok := req.Headers.Get("User-Agent")
	if !ok {
		return response.BadRequest(), nil
	}
	return response.Text(response.StatusOK, ua), nil
}
