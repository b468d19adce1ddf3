package server

import (
	"bufio"
	"errors"
	"net"
	"time"

	"github.com/Brownie44l1/httpd/internal/compress"
	"github.com/Brownie44l1/httpd/internal/logger"
	"github.com/Brownie44l1/httpd/internal/request"
)

// serveConn handles all requests on a single connection:
// read, route, encode, write, then loop or close.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	if !s.trackConn(conn, true) {
		return
	}
	defer s.trackConn(conn, false)

	s.metrics.ConnectionsTotal.Inc()
	s.metrics.ActiveConnections.Inc()
	defer s.metrics.ActiveConnections.Dec()

	br := getReader(conn)
	defer putReader(br)
	bw := getWriter(conn)
	defer putWriter(bw)

	remote := logger.F("remote", conn.RemoteAddr().String())

	for {
		if s.config.IdleTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
		}

		req, err := request.ParseRequest(br)
		if err != nil {
			s.logReadError(err, remote)
			return
		}

		keepAlive, err := s.respond(bw, req)
		if err != nil {
			s.metrics.ErrorsTotal.Inc()
			s.Logger.Error("connection failed", remote, logger.F("path", req.Path), logger.F("error", err))
			return
		}

		if !keepAlive {
			return
		}
	}
}

// respond routes req, applies gzip, writes the response and flushes it.
func (s *Server) respond(bw *bufio.Writer, req *request.Request) (bool, error) {
	resp, err := s.router.ServeRequest(req)
	if err != nil {
		return false, err
	}

	if err := compress.Transcode(req, resp); err != nil {
		return false, err
	}
	keepAlive := setConnection(req, resp)

	if _, err := resp.WriteTo(bw); err != nil {
		return false, err
	}
	if err := bw.Flush(); err != nil {
		return false, err
	}
	return keepAlive, nil
}

func (s *Server) logReadError(err error, remote logger.Field) {
	var netErr net.Error

	switch {
	case errors.Is(err, request.ErrConnectionClosed):
		s.Logger.Info("connection closed by peer", remote)
	case errors.As(err, &netErr) && netErr.Timeout():
		s.Logger.Info("idle timeout", remote)
	case request.IsProtocolError(err):
		s.Logger.Warn("malformed request", remote, logger.F("error", err))
	case errors.Is(err, net.ErrClosed):
		s.Logger.Debug("connection closed", remote)
	default:
		s.metrics.ErrorsTotal.Inc()
		s.Logger.Error("read failed", remote, logger.F("error", err))
	}
}

