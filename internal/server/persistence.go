package server

import (
	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

// setConnection labels resp with the connection's fate and reports whether
// the connection stays open. HTTP/1.1 keeps it alive unless the client sent
// "Connection: close".
func setConnection(req *request.Request, resp *response.Response) bool {
	if req.WantsClose() {
		resp.Headers.Set("Connection", "close")
		return false
	}

	resp.Headers.Set("Connection", "keep-alive")
	return true
}
